package handlers

import (
	"context"
	"log"
	"net/http"

	"quiznight/models"
	"quiznight/services/enrichment"

	"github.com/gorilla/mux"
)

type QuestionGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error)
}

type MediaEnricher interface {
	Enrich(ctx context.Context, questions []models.GeneratedQuestion) ([]models.GeneratedQuestion, enrichment.Report)
}

type GenerateResponse struct {
	Questions  []models.GeneratedQuestion `json:"questions"`
	Enrichment *enrichment.Report         `json:"enrichment,omitempty"`
}

type GenerateHandler struct {
	generator QuestionGenerator
	enricher  MediaEnricher
}

// NewGenerateHandler returns the generation handler. enricher may be nil,
// in which case enrich requests return the questions without media.
func NewGenerateHandler(generator QuestionGenerator, enricher MediaEnricher) *GenerateHandler {
	return &GenerateHandler{generator: generator, enricher: enricher}
}

func (h *GenerateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/generate", h.Generate).Methods("POST")
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received question generation request")

	var req models.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Printf("[ERROR] Failed to decode generation request JSON: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	questions, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		log.Printf("[ERROR] Question generation failed: %v", err)
		writeServiceError(w, err, "Failed to generate questions")
		return
	}

	resp := GenerateResponse{Questions: questions}
	if req.Enrich && h.enricher != nil {
		enriched, report := h.enricher.Enrich(r.Context(), questions)
		resp.Questions = enriched
		resp.Enrichment = &report
	}

	log.Printf("[INFO] Question generation completed with %d questions", len(resp.Questions))
	writeJSONResponse(w, http.StatusOK, resp)
}
