package handlers

import (
	"context"
	"net/http"

	"quiznight/auth"
	"quiznight/models"

	"github.com/gorilla/mux"
)

type QuizStore interface {
	SaveQuiz(ctx context.Context, ownerID string, req *models.SaveQuizRequest) (*models.QuizTree, error)
	ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error)
	GetQuizTree(ctx context.Context, ownerID, id string) (*models.QuizTree, error)
	DeleteQuiz(ctx context.Context, ownerID, id string) error
}

type QuizStoreHandler struct {
	service QuizStore
}

func NewQuizStoreHandler(service QuizStore) *QuizStoreHandler {
	return &QuizStoreHandler{service: service}
}

func (h *QuizStoreHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quizzes", h.SaveQuiz).Methods("POST")
	router.HandleFunc("/quizzes", h.ListQuizzes).Methods("GET")
	router.HandleFunc("/quizzes/{id}", h.GetQuiz).Methods("GET")
	router.HandleFunc("/quizzes/{id}", h.DeleteQuiz).Methods("DELETE")
}

func (h *QuizStoreHandler) SaveQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.SaveQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	tree, err := h.service.SaveQuiz(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to save quiz")
		return
	}

	writeJSONResponse(w, http.StatusCreated, tree)
}

func (h *QuizStoreHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve quizzes")
		return
	}
	if quizzes == nil {
		quizzes = []*models.Quiz{}
	}

	writeJSONResponse(w, http.StatusOK, quizzes)
}

func (h *QuizStoreHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.GetQuizTree(r.Context(), auth.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve quiz")
		return
	}

	writeJSONResponse(w, http.StatusOK, tree)
}

func (h *QuizStoreHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteQuiz(r.Context(), auth.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to delete quiz")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
