package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quiznight/db"
	"quiznight/services"
	"quiznight/services/generator"
	"quiznight/services/printing"
	"quiznight/services/search"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, errorResponse{Error: message})
}

// statusFor maps service errors to HTTP status codes. Anything unknown is
// a failed collaborator call or a storage failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrMissingPrompt),
		errors.Is(err, search.ErrMissingSearchTerm),
		generator.IsRequestError(err),
		errors.Is(err, services.ErrInvalidQuiz),
		errors.Is(err, printing.ErrUnknownLayout):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, search.ErrNotConfigured),
		errors.Is(err, generator.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeServiceError reports err to the client. Server-side failures use
// the generic message and carry the underlying error in details.
func writeServiceError(w http.ResponseWriter, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeJSONResponse(w, status, errorResponse{Error: message, Details: err.Error()})
		return
	}
	writeErrorResponse(w, status, err.Error())
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
