package printing

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"quiznight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intp(v int) *int { return &v }

func roundOf(number int, theme string, questions ...models.Question) models.RoundTree {
	for i := range questions {
		questions[i].QuestionNumber = i + 1
	}
	return models.RoundTree{Round: models.Round{RoundNumber: number, Theme: theme}, Questions: questions}
}

func plain(text, answer string) models.Question {
	return models.Question{Category: models.CategoryGeneral, QuestionText: text, AnswerText: answer}
}

func sampleTree() *models.QuizTree {
	music := models.Question{Category: models.CategoryMusic, QuestionText: "Name this song", AnswerText: "Paint It Black"}
	music.YouTubeVideoID = "abc"
	music.YouTubeStartSeconds = intp(30)
	music.YouTubeEndSeconds = intp(60)

	ben := models.Question{Category: models.CategoryPicture, QuestionText: "Which tower?", AnswerText: "Big Ben"}
	ben.ImageURL = "https://example.com/ben.jpg"

	return &models.QuizTree{
		Quiz: models.Quiz{ID: "quiz-1", Name: "Friday <Special>"},
		Rounds: []models.RoundTree{
			roundOf(1, "Sixties", music, plain("=1+1", "2")),
			roundOf(2, "Landmarks", ben, plain("Tallest building?", "Burj Khalifa")),
		},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Harbour Pub Quiz")
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC) }
	return r
}

func render(t *testing.T, layout Layout, tree *models.QuizTree) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer(t).Render(&buf, layout, tree))
	return buf.String()
}

func TestAnswerSheet(t *testing.T) {
	out := render(t, LayoutAnswerSheet, sampleTree())

	assert.Contains(t, out, "Friday &lt;Special&gt;")
	assert.Contains(t, out, "Team Name:")
	assert.Contains(t, out, "Round 1: Sixties")
	assert.Contains(t, out, "(2 questions)")
	assert.Equal(t, 2, strings.Count(out, "Score: ____"))
	assert.Contains(t, out, "repeat(2, 1fr)")
	assert.Contains(t, out, "6 March 2026")
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, " 500 ")
	assert.NotContains(t, out, "Paint It Black")
}

func TestAnswerSheetUsesFourColumnsForLongRounds(t *testing.T) {
	var questions []models.Question
	for i := 0; i < 11; i++ {
		questions = append(questions, plain(fmt.Sprintf("q%d", i), "a"))
	}
	tree := &models.QuizTree{Quiz: models.Quiz{Name: "Long"}, Rounds: []models.RoundTree{roundOf(1, "Long", questions...)}}

	out := render(t, LayoutAnswerSheet, tree)
	assert.Contains(t, out, "repeat(4, 1fr)")
	assert.Contains(t, out, "11.")
}

func TestPictureRoundShowsOnlyImages(t *testing.T) {
	out := render(t, LayoutPictureRound, sampleTree())

	assert.Contains(t, out, "Round 2: Landmarks")
	assert.NotContains(t, out, "Round 1: Sixties")
	assert.Contains(t, out, `src="https://example.com/ben.jpg"`)
	assert.Equal(t, 1, strings.Count(out, "picture-cell\""))
	assert.NotContains(t, out, "Big Ben")
	assert.Contains(t, out, " 1000 ")
}

func TestPictureRoundWithoutPictures(t *testing.T) {
	tree := &models.QuizTree{Quiz: models.Quiz{Name: "Words"}, Rounds: []models.RoundTree{roundOf(1, "Words", plain("q", "a"))}}

	out := render(t, LayoutPictureRound, tree)
	assert.Contains(t, out, "No picture rounds found in this quiz.")
	assert.NotContains(t, out, "window.print()")
}

func TestMasterSheet(t *testing.T) {
	out := render(t, LayoutMasterSheet, sampleTree())

	assert.Contains(t, out, "QUIZ MASTER SHEET")
	assert.Contains(t, out, "Q1: Name this song")
	assert.Contains(t, out, "ANSWER: Paint It Black")
	assert.Contains(t, out, "YouTube clip: 30s - 60s")
	assert.Equal(t, 1, strings.Count(out, "Picture question"))
	assert.Contains(t, out, "ANSWER: Burj Khalifa")
	assert.Contains(t, out, "CONFIDENTIAL - Quiz Master Only")
}

func TestClipLabelDefaults(t *testing.T) {
	assert.Equal(t, "0s - 30s", clipLabel(models.Media{YouTubeVideoID: "x"}))
	assert.Equal(t, "", clipLabel(models.Media{}))
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("master-sheet")
	require.NoError(t, err)
	assert.Equal(t, LayoutMasterSheet, l)

	_, err = ParseLayout("poster")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestWriteMasterSheetXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMasterSheetXLSX(&buf, sampleTree()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(masterSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Question", rows[0][4])
	assert.Equal(t, "Paint It Black", rows[1][5])
	assert.Equal(t, "30s - 60s", rows[1][7])
	assert.Equal(t, "'=1+1", rows[2][4])
	assert.Equal(t, "https://example.com/ben.jpg", rows[3][6])
}
