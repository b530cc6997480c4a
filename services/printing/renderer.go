package printing

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"quiznight/models"

	"github.com/samber/lo"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownLayout = errors.New("unknown print layout")

type Layout string

const (
	LayoutAnswerSheet  Layout = "answer-sheet"
	LayoutPictureRound Layout = "picture-round"
	LayoutMasterSheet  Layout = "master-sheet"
)

var layoutFiles = map[Layout]string{
	LayoutAnswerSheet:  "templates/answer_sheet.html",
	LayoutPictureRound: "templates/picture_round.html",
	LayoutMasterSheet:  "templates/master_sheet.html",
}

func ParseLayout(s string) (Layout, error) {
	l := Layout(s)
	if _, ok := layoutFiles[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
	return l, nil
}

// Print dialog delays after the page has loaded. Picture pages wait longer
// so images can finish loading.
const (
	printDelay        = 500 * time.Millisecond
	picturePrintDelay = 1000 * time.Millisecond
)

// compactThreshold is the round size above which the answer sheet switches
// from two to four columns.
const compactThreshold = 10

type Renderer struct {
	venue     string
	now       func() time.Time
	templates map[Layout]*template.Template
}

// NewRenderer parses the embedded page templates. venue is printed in the
// header and footer of every page.
func NewRenderer(venue string) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}

	templates := make(map[Layout]*template.Template, len(layoutFiles))
	for layout, file := range layoutFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout template: %w", err)
		}
		if t, err = t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", layout, err)
		}
		templates[layout] = t
	}

	return &Renderer{venue: venue, now: time.Now, templates: templates}, nil
}

type page struct {
	Quiz         string
	Heading      string
	Venue        string
	Date         string
	PrintDelayMS int64
	Rounds       any
}

type answerRound struct {
	Number        int
	Theme         string
	QuestionCount int
	Columns       int
	Numbers       []int
}

type pictureRound struct {
	Number   int
	Theme    string
	Pictures []picture
}

type picture struct {
	Number   int
	ImageURL string
}

type masterRound struct {
	Number        int
	Theme         string
	QuestionCount int
	Questions     []masterQuestion
}

type masterQuestion struct {
	Number  int
	Text    string
	Answer  string
	Picture bool
	Clip    string
	Audio   bool
}

// Render writes the chosen layout of the quiz as a standalone HTML page.
func (r *Renderer) Render(w io.Writer, layout Layout, tree *models.QuizTree) error {
	t, ok := r.templates[layout]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}

	var p page
	switch layout {
	case LayoutAnswerSheet:
		p = r.answerSheet(tree)
	case LayoutPictureRound:
		p = r.pictureRounds(tree)
	case LayoutMasterSheet:
		p = r.masterSheet(tree)
	}

	if err := t.ExecuteTemplate(w, "layout", p); err != nil {
		log.Printf("[ERROR] Failed to render %s for quiz %s: %v", layout, tree.ID, err)
		return fmt.Errorf("failed to render %s: %w", layout, err)
	}
	return nil
}

func (r *Renderer) newPage(tree *models.QuizTree, heading string, delay time.Duration) page {
	return page{
		Quiz:         tree.Name,
		Heading:      heading,
		Venue:        r.venue,
		Date:         r.now().Format("2 January 2006"),
		PrintDelayMS: delay.Milliseconds(),
	}
}

func (r *Renderer) answerSheet(tree *models.QuizTree) page {
	p := r.newPage(tree, "Answer Sheet", printDelay)
	p.Rounds = lo.Map(tree.Rounds, func(round models.RoundTree, _ int) answerRound {
		columns := 2
		if len(round.Questions) > compactThreshold {
			columns = 4
		}
		return answerRound{
			Number:        round.RoundNumber,
			Theme:         round.Theme,
			QuestionCount: len(round.Questions),
			Columns:       columns,
			Numbers: lo.Map(round.Questions, func(q models.Question, _ int) int {
				return q.QuestionNumber
			}),
		}
	})
	return p
}

func (r *Renderer) pictureRounds(tree *models.QuizTree) page {
	rounds := lo.FilterMap(tree.Rounds, func(round models.RoundTree, _ int) (pictureRound, bool) {
		if !round.HasPictures() {
			return pictureRound{}, false
		}
		return pictureRound{
			Number: round.RoundNumber,
			Theme:  round.Theme,
			Pictures: lo.FilterMap(round.Questions, func(q models.Question, _ int) (picture, bool) {
				return picture{Number: q.QuestionNumber, ImageURL: q.ImageURL}, q.HasImage()
			}),
		}, true
	})

	// Nothing to print without pictures.
	delay := pictureDelayFor(len(rounds))
	p := r.newPage(tree, "Picture Round", delay)
	p.Rounds = rounds
	return p
}

func pictureDelayFor(rounds int) time.Duration {
	if rounds == 0 {
		return 0
	}
	return picturePrintDelay
}

func (r *Renderer) masterSheet(tree *models.QuizTree) page {
	p := r.newPage(tree, "Master Sheet", printDelay)
	p.Rounds = lo.Map(tree.Rounds, func(round models.RoundTree, _ int) masterRound {
		return masterRound{
			Number:        round.RoundNumber,
			Theme:         round.Theme,
			QuestionCount: len(round.Questions),
			Questions: lo.Map(round.Questions, func(q models.Question, _ int) masterQuestion {
				return masterQuestion{
					Number:  q.QuestionNumber,
					Text:    q.QuestionText,
					Answer:  q.AnswerText,
					Picture: q.HasImage(),
					Clip:    clipLabel(q.Media),
					Audio:   q.HasAudio(),
				}
			}),
		}
	})
	return p
}

// clipLabel formats the playback window, e.g. "30s - 60s".
func clipLabel(m models.Media) string {
	if !m.HasVideo() {
		return ""
	}
	start, end := m.ClipWindow()
	return fmt.Sprintf("%ds - %ds", start, end)
}
