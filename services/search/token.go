package search

import (
	"context"
	"sync"
	"time"
)

// tokenRefreshMargin is subtracted from the issuer's lifetime so a cached
// token is never used in its final minute. Short-lived tokens give up at
// most half their lifetime.
const tokenRefreshMargin = time.Minute

func usableFor(expiresIn time.Duration) time.Duration {
	return expiresIn - min(tokenRefreshMargin, expiresIn/2)
}

// TokenFetcher obtains a fresh access token and its lifetime.
type TokenFetcher func(ctx context.Context) (token string, expiresIn time.Duration, err error)

// TokenCache holds one bearer token for a client-credentials API.
//
// The mutex only guards the cached fields. It is never held across a fetch,
// so two callers that both find the token stale will both fetch, and the
// last write wins.
type TokenCache struct {
	fetch TokenFetcher
	now   func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenCache(fetch TokenFetcher) *TokenCache {
	return &TokenCache{fetch: fetch, now: time.Now}
}

// Valid reports whether a token is cached and usable at now.
func (c *TokenCache) Valid(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != "" && now.Before(c.expiresAt)
}

// Token returns the cached token, fetching a new one when it is missing or
// expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, expiresIn, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.expiresAt = c.now().Add(usableFor(expiresIn))
	c.mu.Unlock()

	return token, nil
}
