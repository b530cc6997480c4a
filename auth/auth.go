package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type ownerKey struct{}

// WithOwner returns a context carrying the id of the user making the request.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerID returns the requesting user's id, or "" outside a request.
func OwnerID(ctx context.Context) string {
	id, _ := ctx.Value(ownerKey{}).(string)
	return id
}

type Claims struct {
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens issued by the identity provider.
// Without a secret it runs in development mode and treats every request
// as coming from a fixed user.
type Verifier struct {
	secret     []byte
	devOwnerID string
}

func NewVerifier(secret, devOwnerID string) *Verifier {
	if secret == "" {
		log.Printf("[WARN] AUTH_JWT_SECRET not set, every request runs as %q", devOwnerID)
	}
	return &Verifier{secret: []byte(secret), devOwnerID: devOwnerID}
}

func (v *Verifier) DevMode() bool {
	return len(v.secret) == 0
}

// Parse validates a token and returns its subject.
func (v *Verifier) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// IssueToken signs a token for subject. The identity provider normally
// does this; it exists for local tooling and tests.
func (v *Verifier) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(v.secret)
}

// Middleware puts the verified owner id into the request context and
// rejects requests without a valid bearer token.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v.DevMode() {
			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), v.devOwnerID)))
			return
		}

		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		owner, err := v.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			log.Printf("[WARN] Rejected token for %s %s: %v", r.Method, r.URL.Path, err)
			writeUnauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
