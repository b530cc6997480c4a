package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"

	"quiznight/auth"
	"quiznight/models"
	"quiznight/services/printing"

	"github.com/gorilla/mux"
)

type QuizReader interface {
	GetQuizTree(ctx context.Context, ownerID, id string) (*models.QuizTree, error)
}

type PrintHandler struct {
	quizzes  QuizReader
	renderer *printing.Renderer
}

func NewPrintHandler(quizzes QuizReader, renderer *printing.Renderer) *PrintHandler {
	return &PrintHandler{quizzes: quizzes, renderer: renderer}
}

func (h *PrintHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quizzes/{id}/print/master-sheet.xlsx", h.MasterSheetXLSX).Methods("GET")
	router.HandleFunc("/quizzes/{id}/print/{layout}", h.Print).Methods("GET")
}

func (h *PrintHandler) Print(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	layout, err := printing.ParseLayout(vars["layout"])
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	tree, err := h.quizzes.GetQuizTree(r.Context(), auth.OwnerID(r.Context()), vars["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve quiz")
		return
	}

	// Render fully before writing so a template failure still gets a JSON error.
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, layout, tree); err != nil {
		writeServiceError(w, err, "Failed to render print view")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[ERROR] Failed to write %s page: %v", layout, err)
	}
}

func (h *PrintHandler) MasterSheetXLSX(w http.ResponseWriter, r *http.Request) {
	tree, err := h.quizzes.GetQuizTree(r.Context(), auth.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve quiz")
		return
	}

	var buf bytes.Buffer
	if err := printing.WriteMasterSheetXLSX(&buf, tree); err != nil {
		writeServiceError(w, err, "Failed to create Excel file")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"master-sheet-%s.xlsx\"", tree.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[ERROR] Failed to write master sheet: %v", err)
	}
}
