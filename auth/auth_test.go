package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(OwnerID(r.Context())))
	})
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("secret", "local")
	valid, err := v.IssueToken("user-42", time.Hour)
	require.NoError(t, err)
	expired, err := v.IssueToken("user-42", -time.Minute)
	require.NoError(t, err)
	foreign, err := NewVerifier("other", "").IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
		wantError  string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantOwner: "user-42"},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantError: "invalid token"},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantError: "invalid token"},
		{name: "garbage", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized, wantError: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			v.Middleware(ownerEcho()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantOwner, rec.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			}
		})
	}
}

func TestDevModeUsesFixedOwner(t *testing.T) {
	v := NewVerifier("", "local")
	assert.True(t, v.DevMode())

	rec := httptest.NewRecorder()
	v.Middleware(ownerEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local", rec.Body.String())
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewVerifier("secret", "").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRequiresSubject(t *testing.T) {
	v := NewVerifier("secret", "")
	signed, err := v.IssueToken("", time.Hour)
	require.NoError(t, err)

	_, err = v.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
