package models

import "time"

type Quiz struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Round struct {
	ID          string `json:"id" db:"id"`
	QuizID      string `json:"quiz_id" db:"quiz_id"`
	RoundNumber int    `json:"round_number" db:"round_number"`
	Theme       string `json:"theme" db:"theme"`
}

// Media holds the optional clip, picture and preview attached to a question.
// Which fields may be set depends on the question category.
type Media struct {
	YouTubeVideoID      string `json:"youtube_video_id,omitempty" db:"youtube_video_id"`
	YouTubeStartSeconds *int   `json:"youtube_start_seconds,omitempty" db:"youtube_start_seconds"`
	YouTubeEndSeconds   *int   `json:"youtube_end_seconds,omitempty" db:"youtube_end_seconds"`
	ImageURL            string `json:"image_url,omitempty" db:"image_url"`
	AudioPreviewURL     string `json:"spotify_preview_url,omitempty" db:"spotify_preview_url"`
}

func (m Media) HasVideo() bool { return m.YouTubeVideoID != "" }
func (m Media) HasImage() bool { return m.ImageURL != "" }
func (m Media) HasAudio() bool { return m.AudioPreviewURL != "" }

// ClipWindow returns the playback window of the attached video, falling
// back to 0-30s for unset offsets.
func (m Media) ClipWindow() (start, end int) {
	start, end = 0, DefaultClipSeconds
	if m.YouTubeStartSeconds != nil {
		start = *m.YouTubeStartSeconds
	}
	if m.YouTubeEndSeconds != nil {
		end = *m.YouTubeEndSeconds
	}
	return start, end
}

const DefaultClipSeconds = 30

type Question struct {
	ID             string   `json:"id" db:"id"`
	RoundID        string   `json:"round_id" db:"round_id"`
	QuestionNumber int      `json:"question_number" db:"question_number"`
	Category       Category `json:"type" db:"type"`
	QuestionText   string   `json:"question_text" db:"question_text"`
	AnswerText     string   `json:"answer_text" db:"answer_text"`
	Media
}

type RoundTree struct {
	Round
	Questions []Question `json:"questions"`
}

// IsPictureRound reports whether every question in the round carries an
// image. Such rounds are presented and printed as one grid.
func (r RoundTree) IsPictureRound() bool {
	if len(r.Questions) == 0 {
		return false
	}
	for _, q := range r.Questions {
		if !q.HasImage() {
			return false
		}
	}
	return true
}

// HasPictures reports whether at least one question carries an image.
func (r RoundTree) HasPictures() bool {
	for _, q := range r.Questions {
		if q.HasImage() {
			return true
		}
	}
	return false
}

type QuizTree struct {
	Quiz
	Rounds []RoundTree `json:"rounds"`
}

func (t *QuizTree) QuestionCount() int {
	total := 0
	for _, r := range t.Rounds {
		total += len(r.Questions)
	}
	return total
}

type SaveQuizRequest struct {
	Name   string             `json:"name"`
	Rounds []SaveRoundRequest `json:"rounds"`
}

type SaveRoundRequest struct {
	Theme     string              `json:"theme"`
	Questions []GeneratedQuestion `json:"questions"`
}
