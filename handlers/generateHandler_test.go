package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiznight/models"
	"quiznight/services/enrichment"
	"quiznight/services/generator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error)

func (f generatorFunc) Generate(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error) {
	return f(ctx, req)
}

type stubEnricher struct {
	calls int
}

func (s *stubEnricher) Enrich(ctx context.Context, qs []models.GeneratedQuestion) ([]models.GeneratedQuestion, enrichment.Report) {
	s.calls++
	out := append([]models.GeneratedQuestion(nil), qs...)
	out[0].YouTubeVideoID = "vid-1"
	return out, enrichment.Report{Attempted: len(qs), Attached: 1}
}

func serve(t *testing.T, register func(*mux.Router), method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	register(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateReturnsQuestions(t *testing.T) {
	var got models.GenerateRequest
	gen := generatorFunc(func(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error) {
		got = req
		return []models.GeneratedQuestion{{Question: "Who sang Satisfaction?", Answer: "The Rolling Stones", Category: models.CategoryMusic, SearchHint: "The Rolling Stones - Satisfaction"}}, nil
	})
	enricher := &stubEnricher{}

	rec := serve(t, NewGenerateHandler(gen, enricher).RegisterRoutes, http.MethodPost, "/api/generate",
		`{"prompt":"1960s rock","type":"music","difficulty":"easy","count":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.CategoryMusic, got.Category)
	assert.Equal(t, models.DifficultyEasy, got.Difficulty)
	assert.JSONEq(t, `{"questions":[{"question":"Who sang Satisfaction?","answer":"The Rolling Stones","type":"music","searchTerm":"The Rolling Stones - Satisfaction"}]}`, rec.Body.String())
	assert.Zero(t, enricher.calls)
}

func TestGenerateWithEnrichment(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error) {
		return []models.GeneratedQuestion{{Question: "q", Answer: "a", Category: models.CategoryFilm, SearchHint: "Jaws trailer"}}, nil
	})
	enricher := &stubEnricher{}

	rec := serve(t, NewGenerateHandler(gen, enricher).RegisterRoutes, http.MethodPost, "/api/generate",
		`{"prompt":"sharks","type":"film","count":1,"enrich":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, enricher.calls)
	assert.Contains(t, rec.Body.String(), `"youtubeVideoId":"vid-1"`)
	assert.Contains(t, rec.Body.String(), `"enrichment":{"attempted":1,"attached":1}`)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid JSON payload"}`},
		{name: "unknown type", body: `{"prompt":"x","type":"astrology"}`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid JSON payload"}`},
		{name: "missing prompt", body: `{}`, err: generator.ErrMissingPrompt, wantStatus: http.StatusBadRequest, wantBody: `{"error":"prompt is required"}`},
		{name: "not configured", body: `{"prompt":"x"}`, err: generator.ErrNotConfigured, wantStatus: http.StatusServiceUnavailable, wantBody: `{"error":"question generator not configured"}`},
		{
			name:       "model failure",
			body:       `{"prompt":"x"}`,
			err:        errors.New("failed to generate LLM response: quota exceeded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate questions","details":"failed to generate LLM response: quota exceeded"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := generatorFunc(func(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error) {
				return nil, tt.err
			})

			rec := serve(t, NewGenerateHandler(gen, nil).RegisterRoutes, http.MethodPost, "/api/generate", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
