package player

import (
	"fmt"
	"testing"

	"quiznight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func plainRound(number, size int) models.RoundTree {
	r := models.RoundTree{Round: models.Round{RoundNumber: number, Theme: fmt.Sprintf("Round %d", number)}}
	for i := 1; i <= size; i++ {
		r.Questions = append(r.Questions, models.Question{
			QuestionNumber: i,
			Category:       models.CategoryGeneral,
			QuestionText:   fmt.Sprintf("q%d.%d", number, i),
			AnswerText:     fmt.Sprintf("a%d.%d", number, i),
		})
	}
	return r
}

func pictureRound(number, size int) models.RoundTree {
	r := plainRound(number, size)
	for i := range r.Questions {
		r.Questions[i].Category = models.CategoryPicture
		r.Questions[i].ImageURL = fmt.Sprintf("https://example.com/%d-%d.jpg", number, i)
	}
	return r
}

func newPlayer(t *testing.T, rounds ...models.RoundTree) *Player {
	t.Helper()
	p, err := New(&models.QuizTree{Quiz: models.Quiz{Name: "Friday"}, Rounds: rounds})
	require.NoError(t, err)
	return p
}

func TestPictureRoundAdvancesWholeRound(t *testing.T) {
	for _, size := range []int{5, 10, 12, 15, 20} {
		t.Run(fmt.Sprintf("%d images", size), func(t *testing.T) {
			p := newPlayer(t, pictureRound(1, size), plainRound(2, 3))

			slide := p.Current()
			assert.Equal(t, SlidePictureGrid, slide.Kind)
			assert.Len(t, slide.Grid, size)

			p.Next()
			assert.Equal(t, State{Round: 1, Question: 0}, p.State())

			p.Previous()
			assert.Equal(t, State{Round: 0, Question: 0}, p.State())
		})
	}
}

func TestNextWalksQuestionsThenRounds(t *testing.T) {
	p := newPlayer(t, plainRound(1, 2), plainRound(2, 1))

	assert.Equal(t, "Round 1 - Question 1 of 2", p.Progress())
	p.Next()
	assert.Equal(t, "Round 1 - Question 2 of 2", p.Progress())
	p.Next()
	assert.Equal(t, "Round 2 - Question 1 of 1", p.Progress())
	p.Next()
	assert.True(t, p.Completed())
	assert.Equal(t, "Quiz completed!", p.Progress())
	assert.Equal(t, SlideCompleted, p.Current().Kind)
}

func TestBoundariesAreIdempotent(t *testing.T) {
	p := newPlayer(t, plainRound(1, 2), pictureRound(2, 5))

	p.Previous()
	p.Previous()
	assert.Equal(t, State{}, p.State())

	for i := 0; i < 10; i++ {
		p.Next()
	}
	completed := p.State()
	assert.True(t, completed.Completed)

	p.Next()
	assert.Equal(t, completed, p.State())
	p.Previous()
	assert.Equal(t, completed, p.State())
	p.ToggleAnswer()
	assert.Equal(t, completed, p.State())
}

func TestPreviousFromQuestionRoundLandsOnPictureGrid(t *testing.T) {
	p := newPlayer(t, plainRound(1, 3), pictureRound(2, 12), plainRound(3, 2))

	p.Next()
	p.Next()
	p.Next()
	assert.Equal(t, SlidePictureGrid, p.Current().Kind)
	p.Next()
	assert.Equal(t, State{Round: 2, Question: 0}, p.State())

	p.Previous()
	assert.Equal(t, State{Round: 1, Question: 0}, p.State())
	p.Previous()
	assert.Equal(t, State{Round: 0, Question: 2}, p.State())
}

func TestAnswerRevealResetsOnMove(t *testing.T) {
	p := newPlayer(t, plainRound(1, 2), pictureRound(2, 5))

	p.ToggleAnswer()
	slide := p.Current()
	assert.True(t, slide.AnswerVisible)
	assert.Equal(t, "a1.1", slide.Question.AnswerText)

	p.Next()
	assert.False(t, p.Current().AnswerVisible)

	p.Next()
	p.ToggleAnswer()
	assert.True(t, p.State().RevealAll)
	assert.False(t, p.State().ShowAnswer)
	assert.True(t, p.Current().AnswerVisible)

	p.Previous()
	assert.False(t, p.State().RevealAll)
}

func TestMixedRoundIsNotAPictureRound(t *testing.T) {
	r := pictureRound(1, 3)
	r.Questions[1].ImageURL = ""
	p := newPlayer(t, r)

	assert.Equal(t, SlideQuestion, p.Current().Kind)
	p.Next()
	assert.Equal(t, State{Round: 0, Question: 1}, p.State())
}

func TestClipDefaults(t *testing.T) {
	r := plainRound(1, 3)
	r.Questions[0].Category = models.CategoryMusic
	r.Questions[0].YouTubeVideoID = "abc"
	r.Questions[1].Category = models.CategoryMusic
	r.Questions[1].YouTubeVideoID = "def"
	r.Questions[1].YouTubeStartSeconds = intp(30)
	r.Questions[1].YouTubeEndSeconds = intp(60)
	r.Questions[2].AudioPreviewURL = "https://p.scdn.co/preview"
	p := newPlayer(t, r)

	assert.Equal(t, &Clip{VideoID: "abc", Start: 0, End: 30}, p.Current().Clip)
	p.Next()
	assert.Equal(t, &Clip{VideoID: "def", Start: 30, End: 60}, p.Current().Clip)
	p.Next()
	slide := p.Current()
	assert.Nil(t, slide.Clip)
	assert.Equal(t, "https://p.scdn.co/preview", slide.AudioURL)
}

func TestFullscreenSurvivesMoves(t *testing.T) {
	p := newPlayer(t, plainRound(1, 2))

	p.ToggleFullscreen()
	p.Next()
	assert.True(t, p.State().Fullscreen)
	p.ToggleFullscreen()
	assert.False(t, p.State().Fullscreen)
}

func TestNewSkipsEmptyRounds(t *testing.T) {
	p := newPlayer(t, models.RoundTree{Round: models.Round{RoundNumber: 1}}, plainRound(2, 1))
	assert.Equal(t, 2, p.Current().RoundNumber)
	assert.Equal(t, "Round 2 - Question 1 of 1", p.Progress())

	_, err := New(&models.QuizTree{Rounds: []models.RoundTree{{Round: models.Round{RoundNumber: 1}}}})
	assert.ErrorIs(t, err, ErrEmptyQuiz)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}
