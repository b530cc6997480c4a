package enrichment

import (
	"context"
	"log"
	"strings"

	"quiznight/models"
)

const (
	musicSearchSuffix = " official audio"

	// Clips attached automatically skip the intro.
	autoClipStart = 30
	autoClipEnd   = 60

	// Clips picked by hand start at the top.
	manualClipStart = 0
	manualClipEnd   = models.DefaultClipSeconds
)

type VideoSearcher interface {
	SearchVideos(ctx context.Context, term string) ([]models.Video, error)
}

type ImageSearcher interface {
	SearchImages(ctx context.Context, term string) ([]models.Image, error)
}

type AudioSearcher interface {
	SearchPreview(ctx context.Context, term string) (*models.AudioPreview, error)
}

// Enricher attaches media found by the search clients to generated
// questions. Any of the searchers may be nil.
type Enricher struct {
	videos VideoSearcher
	images ImageSearcher
	audio  AudioSearcher
}

func NewEnricher(videos VideoSearcher, images ImageSearcher, audio AudioSearcher) *Enricher {
	return &Enricher{videos: videos, images: images, audio: audio}
}

type Report struct {
	Attempted int `json:"attempted"`
	Attached  int `json:"attached"`
}

// Enrich looks up media for every question that carries a search hint, one
// question at a time. A failed or empty search leaves the question without
// media; it is logged and never returned as an error.
func (e *Enricher) Enrich(ctx context.Context, questions []models.GeneratedQuestion) ([]models.GeneratedQuestion, Report) {
	out := make([]models.GeneratedQuestion, len(questions))
	copy(out, questions)

	var report Report
	for i := range out {
		q := &out[i]
		hint := strings.TrimSpace(q.SearchHint)
		if hint == "" || q.Category.MediaKind() == models.MediaNone {
			continue
		}
		if ctx.Err() != nil {
			log.Printf("[WARN] Enrichment stopped after %d of %d questions: %v", i, len(out), ctx.Err())
			break
		}

		report.Attempted++
		if e.enrichOne(ctx, q, hint) {
			report.Attached++
		}
	}

	log.Printf("[INFO] Enrichment attached media to %d of %d questions", report.Attached, report.Attempted)
	return out, report
}

func (e *Enricher) enrichOne(ctx context.Context, q *models.GeneratedQuestion, hint string) bool {
	switch q.Category.MediaKind() {
	case models.MediaVideo:
		term := hint
		if q.Category == models.CategoryMusic {
			term += musicSearchSuffix
		}
		if e.attachFirstVideo(ctx, q, term) {
			return true
		}
		if q.Category == models.CategoryMusic {
			return e.attachAudio(ctx, q, hint)
		}
		return false
	case models.MediaImage:
		return e.attachFirstImage(ctx, q, hint)
	case models.MediaNone:
		return false
	}
	return false
}

func (e *Enricher) attachFirstVideo(ctx context.Context, q *models.GeneratedQuestion, term string) bool {
	if e.videos == nil {
		return false
	}
	videos, err := e.videos.SearchVideos(ctx, term)
	if err != nil {
		log.Printf("[WARN] Video search failed for %q: %v", term, err)
		return false
	}
	if len(videos) == 0 {
		log.Printf("[WARN] No videos found for %q", term)
		return false
	}

	start, end := autoClipStart, autoClipEnd
	q.YouTubeVideoID = videos[0].VideoID
	q.YouTubeStartSeconds = &start
	q.YouTubeEndSeconds = &end
	return true
}

func (e *Enricher) attachFirstImage(ctx context.Context, q *models.GeneratedQuestion, term string) bool {
	if e.images == nil {
		return false
	}
	images, err := e.images.SearchImages(ctx, term)
	if err != nil {
		log.Printf("[WARN] Image search failed for %q: %v", term, err)
		return false
	}
	if len(images) == 0 {
		log.Printf("[WARN] No images found for %q", term)
		return false
	}

	q.ImageURL = images[0].URL
	return true
}

func (e *Enricher) attachAudio(ctx context.Context, q *models.GeneratedQuestion, term string) bool {
	if e.audio == nil {
		return false
	}
	preview, err := e.audio.SearchPreview(ctx, term)
	if err != nil {
		log.Printf("[WARN] Audio preview search failed for %q: %v", term, err)
		return false
	}
	if preview == nil || !preview.Available() {
		return false
	}

	q.AudioPreviewURL = *preview.PreviewURL
	return true
}

// SelectVideo attaches a hand-picked video with a clip window at the start
// of the video.
func SelectVideo(q models.GeneratedQuestion, videoID string) models.GeneratedQuestion {
	start, end := manualClipStart, manualClipEnd
	q.YouTubeVideoID = videoID
	q.YouTubeStartSeconds = &start
	q.YouTubeEndSeconds = &end
	return q
}
