package player

import (
	"errors"
	"fmt"

	"quiznight/models"
)

var ErrEmptyQuiz = errors.New("quiz has no questions to present")

type SlideKind int

const (
	SlideQuestion SlideKind = iota
	SlidePictureGrid
	SlideCompleted
)

func (k SlideKind) String() string {
	switch k {
	case SlideQuestion:
		return "question"
	case SlidePictureGrid:
		return "picture-grid"
	case SlideCompleted:
		return "completed"
	}
	return "unknown"
}

// Clip is the part of a video to play for a question.
type Clip struct {
	VideoID string `json:"videoId"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Slide is what the presenter shows for the current position.
type Slide struct {
	Kind          SlideKind         `json:"kind"`
	RoundNumber   int               `json:"roundNumber,omitempty"`
	Theme         string            `json:"theme,omitempty"`
	Question      *models.Question  `json:"question,omitempty"`
	Grid          []models.Question `json:"grid,omitempty"`
	AnswerVisible bool              `json:"answerVisible"`
	Clip          *Clip             `json:"clip,omitempty"`
	AudioURL      string            `json:"audioUrl,omitempty"`
}

// State is a snapshot of the player position and flags.
type State struct {
	Round      int
	Question   int
	ShowAnswer bool
	RevealAll  bool
	Fullscreen bool
	Completed  bool
}

// Player walks a saved quiz one question at a time, or one whole round at a
// time for picture rounds. Once completed it stays completed.
type Player struct {
	name   string
	rounds []models.RoundTree
	state  State
}

// New builds a player positioned at the first question. Rounds without
// questions are skipped.
func New(tree *models.QuizTree) (*Player, error) {
	if tree == nil {
		return nil, ErrEmptyQuiz
	}

	var rounds []models.RoundTree
	for _, r := range tree.Rounds {
		if len(r.Questions) > 0 {
			rounds = append(rounds, r)
		}
	}
	if len(rounds) == 0 {
		return nil, fmt.Errorf("quiz %q: %w", tree.Name, ErrEmptyQuiz)
	}

	return &Player{name: tree.Name, rounds: rounds}, nil
}

func (p *Player) Name() string { return p.name }

func (p *Player) State() State { return p.state }

func (p *Player) Completed() bool { return p.state.Completed }

func (p *Player) currentRound() models.RoundTree {
	return p.rounds[p.state.Round]
}

// moveTo changes position and hides any revealed answers.
func (p *Player) moveTo(round, question int) {
	p.state.Round = round
	p.state.Question = question
	p.state.ShowAnswer = false
	p.state.RevealAll = false
}

// Next advances to the next question, the next round or the completed state.
func (p *Player) Next() {
	if p.state.Completed {
		return
	}

	r := p.currentRound()
	if !r.IsPictureRound() && p.state.Question < len(r.Questions)-1 {
		p.moveTo(p.state.Round, p.state.Question+1)
		return
	}
	if p.state.Round < len(p.rounds)-1 {
		p.moveTo(p.state.Round+1, 0)
		return
	}

	p.moveTo(p.state.Round, p.state.Question)
	p.state.Completed = true
}

// Previous goes back one question, or to the last slide of the previous
// round. At the first question, and once completed, it does nothing.
func (p *Player) Previous() {
	if p.state.Completed {
		return
	}

	r := p.currentRound()
	if !r.IsPictureRound() && p.state.Question > 0 {
		p.moveTo(p.state.Round, p.state.Question-1)
		return
	}
	if p.state.Round == 0 {
		return
	}

	prev := p.rounds[p.state.Round-1]
	last := len(prev.Questions) - 1
	if prev.IsPictureRound() {
		last = 0
	}
	p.moveTo(p.state.Round-1, last)
}

// ToggleAnswer shows or hides the answer of the current question, or every
// answer of a picture grid.
func (p *Player) ToggleAnswer() {
	if p.state.Completed {
		return
	}
	if p.currentRound().IsPictureRound() {
		p.state.RevealAll = !p.state.RevealAll
		return
	}
	p.state.ShowAnswer = !p.state.ShowAnswer
}

func (p *Player) ToggleFullscreen() {
	p.state.Fullscreen = !p.state.Fullscreen
}

// Current returns the slide for the current position.
func (p *Player) Current() Slide {
	if p.state.Completed {
		return Slide{Kind: SlideCompleted}
	}

	r := p.currentRound()
	if r.IsPictureRound() {
		return Slide{
			Kind:          SlidePictureGrid,
			RoundNumber:   r.RoundNumber,
			Theme:         r.Theme,
			Grid:          r.Questions,
			AnswerVisible: p.state.RevealAll,
		}
	}

	q := r.Questions[p.state.Question]
	slide := Slide{
		Kind:          SlideQuestion,
		RoundNumber:   r.RoundNumber,
		Theme:         r.Theme,
		Question:      &q,
		AnswerVisible: p.state.ShowAnswer,
		AudioURL:      q.AudioPreviewURL,
	}
	if q.HasVideo() {
		start, end := q.ClipWindow()
		slide.Clip = &Clip{VideoID: q.YouTubeVideoID, Start: start, End: end}
	}
	return slide
}

// Progress is the header line, e.g. "Round 2 - Question 3 of 10".
func (p *Player) Progress() string {
	if p.state.Completed {
		return "Quiz completed!"
	}

	r := p.currentRound()
	if r.IsPictureRound() {
		return fmt.Sprintf("Round %d - Picture round (%d images)", r.RoundNumber, len(r.Questions))
	}
	return fmt.Sprintf("Round %d - Question %d of %d", r.RoundNumber, p.state.Question+1, len(r.Questions))
}
