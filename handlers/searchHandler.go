package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"quiznight/models"
	"quiznight/services/enrichment"
	"quiznight/services/search"

	"github.com/gorilla/mux"
)

type VideoFinder interface {
	VideoCandidates(ctx context.Context, hint string) ([]models.Video, error)
}

type ImageFinder interface {
	SearchImages(ctx context.Context, term string) ([]models.Image, error)
}

type AudioFinder interface {
	SearchPreview(ctx context.Context, term string) (*models.AudioPreview, error)
}

type VideoSearchResponse struct {
	Videos []models.Video `json:"videos"`
}

type ImageSearchResponse struct {
	Images  []models.Image `json:"images"`
	Message string         `json:"message,omitempty"`
}

// SelectVideoRequest replaces the clip of a draft question with a video
// the user picked from the candidates.
type SelectVideoRequest struct {
	Question models.GeneratedQuestion `json:"question"`
	VideoID  string                   `json:"videoId"`
}

const noImagesMessage = "No images found for this search term"

// SearchHandler serves manual media lookups while a draft is edited. A
// nil finder answers 503 for its endpoint.
type SearchHandler struct {
	videos VideoFinder
	images ImageFinder
	audio  AudioFinder
}

func NewSearchHandler(videos VideoFinder, images ImageFinder, audio AudioFinder) *SearchHandler {
	return &SearchHandler{videos: videos, images: images, audio: audio}
}

func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/youtube/search", h.SearchVideos).Methods("POST")
	router.HandleFunc("/api/youtube/select", h.SelectVideo).Methods("POST")
	router.HandleFunc("/api/images/search", h.SearchImages).Methods("POST")
	router.HandleFunc("/api/audio/search", h.SearchAudio).Methods("POST")
}

func readSearchTerm(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return "", false
	}
	term := strings.TrimSpace(req.SearchTerm)
	if term == "" {
		writeErrorResponse(w, http.StatusBadRequest, search.ErrMissingSearchTerm.Error())
		return "", false
	}
	return term, true
}

func (h *SearchHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	term, ok := readSearchTerm(w, r)
	if !ok {
		return
	}
	if h.videos == nil {
		writeServiceError(w, search.ErrNotConfigured, "")
		return
	}

	videos, err := h.videos.VideoCandidates(r.Context(), term)
	if err != nil {
		log.Printf("[ERROR] Video search failed: %v", err)
		writeServiceError(w, err, "Failed to search YouTube")
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}

	writeJSONResponse(w, http.StatusOK, VideoSearchResponse{Videos: videos})
}

func (h *SearchHandler) SelectVideo(w http.ResponseWriter, r *http.Request) {
	var req SelectVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.VideoID) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "videoId is required")
		return
	}

	writeJSONResponse(w, http.StatusOK, enrichment.SelectVideo(req.Question, strings.TrimSpace(req.VideoID)))
}

func (h *SearchHandler) SearchImages(w http.ResponseWriter, r *http.Request) {
	term, ok := readSearchTerm(w, r)
	if !ok {
		return
	}
	if h.images == nil {
		writeServiceError(w, search.ErrNotConfigured, "")
		return
	}

	images, err := h.images.SearchImages(r.Context(), term)
	if err != nil {
		log.Printf("[ERROR] Image search failed: %v", err)
		writeServiceError(w, err, "Failed to search images")
		return
	}

	if len(images) == 0 {
		writeJSONResponse(w, http.StatusOK, ImageSearchResponse{Images: []models.Image{}, Message: noImagesMessage})
		return
	}
	writeJSONResponse(w, http.StatusOK, ImageSearchResponse{Images: images})
}

func (h *SearchHandler) SearchAudio(w http.ResponseWriter, r *http.Request) {
	term, ok := readSearchTerm(w, r)
	if !ok {
		return
	}
	if h.audio == nil {
		writeServiceError(w, search.ErrNotConfigured, "")
		return
	}

	preview, err := h.audio.SearchPreview(r.Context(), term)
	if err != nil {
		log.Printf("[ERROR] Audio preview search failed: %v", err)
		writeServiceError(w, err, "Failed to search Spotify")
		return
	}

	writeJSONResponse(w, http.StatusOK, preview)
}
