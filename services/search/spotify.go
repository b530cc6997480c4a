package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quiznight/models"

	"github.com/samber/lo"
)

const (
	spotifyTokenURL  = "https://accounts.spotify.com/api/token"
	spotifySearchURL = "https://api.spotify.com/v1/search"
	spotifyLimit     = "10"

	noPreviewAvailable = "No preview available"
)

// AudioClient finds track previews on Spotify. It owns the access token
// for its credentials.
type AudioClient struct {
	clientID     string
	clientSecret string
	tokenURL     string
	searchURL    string
	httpClient   *http.Client
	tokens       *TokenCache
}

func NewAudioClient(clientID, clientSecret string, httpClient *http.Client) *AudioClient {
	c := &AudioClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyTokenURL,
		searchURL:    spotifySearchURL,
		httpClient:   defaultHTTPClient(httpClient),
	}
	c.tokens = NewTokenCache(c.fetchToken)
	return c
}

func (c *AudioClient) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *AudioClient) fetchToken(ctx context.Context) (string, time.Duration, error) {
	log.Printf("[INFO] Requesting Spotify access token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	var payload spotifyTokenResponse
	if err := doJSON(c.httpClient, req, "spotify token", &payload); err != nil {
		return "", 0, fmt.Errorf("failed to get Spotify access token: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("spotify token response has no access token")
	}

	return payload.AccessToken, time.Duration(payload.ExpiresIn) * time.Second, nil
}

type spotifyTrack struct {
	Name       string  `json:"name"`
	PreviewURL *string `json:"preview_url"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SearchPreview returns the first of up to ten matching tracks that has a
// preview clip. When none has one, the result carries a nil PreviewURL and
// no error.
func (c *AudioClient) SearchPreview(ctx context.Context, term string) (*models.AudioPreview, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrMissingSearchTerm
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return nil, err
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("type", "track")
	params.Set("limit", spotifyLimit)

	req, err := newGet(ctx, c.searchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var payload spotifySearchResponse
	if err := doJSON(c.httpClient, req, "spotify search", &payload); err != nil {
		log.Printf("[ERROR] Spotify search for %q failed: %v", term, err)
		return nil, err
	}

	track, ok := lo.Find(payload.Tracks.Items, func(t spotifyTrack) bool {
		return t.PreviewURL != nil && *t.PreviewURL != ""
	})
	if !ok {
		log.Printf("[INFO] No Spotify preview found for %q", term)
		return &models.AudioPreview{
			TrackName: term,
			Artist:    noPreviewAvailable,
			Error:     noPreviewAvailable,
		}, nil
	}

	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	return &models.AudioPreview{
		PreviewURL: track.PreviewURL,
		TrackName:  track.Name,
		Artist:     artist,
	}, nil
}
