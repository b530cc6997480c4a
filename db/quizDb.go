package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiznight/models"

	"github.com/google/uuid"
)

var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepository persists the quiz → rounds → questions tree. It exposes
// create, read and delete only; a saved quiz is never updated in place.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, ownerID, name string) (string, error)
	CreateRound(ctx context.Context, quizID string, roundNumber int, theme string) (string, error)
	InsertQuestions(ctx context.Context, roundID string, questions []models.Question) error
	ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error)
	GetQuizTree(ctx context.Context, quizID string) (*models.QuizTree, error)
	DeleteQuiz(ctx context.Context, quizID string) error
}

type SQLQuizRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLQuizRepository(db *sql.DB) *SQLQuizRepository {
	return &SQLQuizRepository{db: db, now: time.Now}
}

func (r *SQLQuizRepository) CreateQuiz(ctx context.Context, ownerID, name string) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO quizzes (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, id, ownerID, name, r.now().UnixNano()); err != nil {
		return "", fmt.Errorf("failed to create quiz: %w", err)
	}

	return id, nil
}

func (r *SQLQuizRepository) CreateRound(ctx context.Context, quizID string, roundNumber int, theme string) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO rounds (id, quiz_id, round_number, theme, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, id, quizID, roundNumber, theme, r.now().UnixNano()); err != nil {
		return "", fmt.Errorf("failed to create round %d: %w", roundNumber, err)
	}

	return id, nil
}

// InsertQuestions writes all questions of a round in one multi-row insert.
// IDs are assigned here and written back into the slice.
func (r *SQLQuizRepository) InsertQuestions(ctx context.Context, roundID string, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	const columns = 12
	createdAt := r.now().UnixNano()
	placeholders := make([]string, 0, len(questions))
	args := make([]any, 0, len(questions)*columns)

	for i := range questions {
		q := &questions[i]
		q.ID = uuid.NewString()
		q.RoundID = roundID

		base := i * columns
		marks := make([]string, columns)
		for c := range marks {
			marks[c] = fmt.Sprintf("$%d", base+c+1)
		}
		placeholders = append(placeholders, "("+strings.Join(marks, ", ")+")")

		args = append(args,
			q.ID,
			roundID,
			q.QuestionNumber,
			q.QuestionText,
			q.AnswerText,
			string(q.Category),
			nullString(q.AudioPreviewURL),
			nullString(q.YouTubeVideoID),
			nullInt(q.YouTubeStartSeconds),
			nullInt(q.YouTubeEndSeconds),
			nullString(q.ImageURL),
			createdAt,
		)
	}

	query := `
		INSERT INTO questions (id, round_id, question_number, question_text, answer_text, type,
			spotify_preview_url, youtube_video_id, youtube_start_seconds, youtube_end_seconds, image_url, created_at)
		VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert questions: %w", err)
	}

	return nil
}

func (r *SQLQuizRepository) ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM quizzes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quizzes: %w", err)
	}

	return quizzes, nil
}

// GetQuizTree loads the quiz, its rounds and their questions with three
// ordered queries.
func (r *SQLQuizRepository) GetQuizTree(ctx context.Context, quizID string) (*models.QuizTree, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM quizzes
		WHERE id = $1`, quizID)

	quiz, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quiz with id %s: %w", quizID, ErrQuizNotFound)
		}
		return nil, err
	}

	tree := &models.QuizTree{Quiz: *quiz, Rounds: []models.RoundTree{}}

	rounds, err := r.db.QueryContext(ctx, `
		SELECT id, quiz_id, round_number, theme
		FROM rounds
		WHERE quiz_id = $1
		ORDER BY round_number`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rounds.Close()

	byID := make(map[string]int)
	for rounds.Next() {
		var round models.Round
		if err := rounds.Scan(&round.ID, &round.QuizID, &round.RoundNumber, &round.Theme); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		byID[round.ID] = len(tree.Rounds)
		tree.Rounds = append(tree.Rounds, models.RoundTree{Round: round, Questions: []models.Question{}})
	}
	if err := rounds.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rounds: %w", err)
	}

	questions, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.round_id, q.question_number, q.question_text, q.answer_text, q.type,
			q.spotify_preview_url, q.youtube_video_id, q.youtube_start_seconds, q.youtube_end_seconds, q.image_url
		FROM questions q
		JOIN rounds r ON r.id = q.round_id
		WHERE r.quiz_id = $1
		ORDER BY r.round_number, q.question_number`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer questions.Close()

	for questions.Next() {
		q, err := scanQuestion(questions)
		if err != nil {
			return nil, err
		}
		idx, ok := byID[q.RoundID]
		if !ok {
			continue
		}
		tree.Rounds[idx].Questions = append(tree.Rounds[idx].Questions, *q)
	}
	if err := questions.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over questions: %w", err)
	}

	return tree, nil
}

// DeleteQuiz removes the quiz row. Rounds and questions go with it through
// the store's cascading foreign keys.
func (r *SQLQuizRepository) DeleteQuiz(ctx context.Context, quizID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM quizzes WHERE id = $1", quizID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("quiz with id %s: %w", quizID, ErrQuizNotFound)
	}

	return nil
}

func (r *SQLQuizRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	var createdAt int64
	if err := row.Scan(&quiz.ID, &quiz.OwnerID, &quiz.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan quiz: %w", err)
	}
	quiz.CreatedAt = time.Unix(0, createdAt).UTC()
	return quiz, nil
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	q := &models.Question{}
	var (
		category                    string
		audioURL, videoID, imageURL sql.NullString
		startSeconds, endSeconds    sql.NullInt64
	)

	err := row.Scan(&q.ID, &q.RoundID, &q.QuestionNumber, &q.QuestionText, &q.AnswerText, &category,
		&audioURL, &videoID, &startSeconds, &endSeconds, &imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to scan question: %w", err)
	}

	q.Category = models.Category(category)
	q.AudioPreviewURL = audioURL.String
	q.YouTubeVideoID = videoID.String
	q.ImageURL = imageURL.String
	q.YouTubeStartSeconds = intPtr(startSeconds)
	q.YouTubeEndSeconds = intPtr(endSeconds)
	return q, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
