package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"quiznight/db"
	"quiznight/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrInvalidQuiz = errors.New("invalid quiz")

// QuestionArchive receives saved quizzes so later generations can avoid
// repeating their questions.
type QuestionArchive interface {
	IndexQuiz(ctx context.Context, tree *models.QuizTree) error
	DeleteQuiz(ctx context.Context, quizID string) error
}

// PartialSaveError reports a save that failed after the quiz row was
// written. Rows inserted before the failing step stay in place.
type PartialSaveError struct {
	QuizID string
	Step   string
	Err    error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("quiz %s partially saved, failed to %s: %v", e.QuizID, e.Step, e.Err)
}

func (e *PartialSaveError) Unwrap() error {
	return e.Err
}

type QuizStoreService struct {
	repo    db.QuizRepository
	archive QuestionArchive
}

// NewQuizStoreService returns the store service. archive may be nil.
func NewQuizStoreService(repo db.QuizRepository, archive QuestionArchive) *QuizStoreService {
	return &QuizStoreService{
		repo:    repo,
		archive: archive,
	}
}

// SaveQuiz writes a complete draft: the quiz, then each round followed by
// all of its questions in one insert. Nothing is written unless the whole
// draft is valid.
func (s *QuizStoreService) SaveQuiz(ctx context.Context, ownerID string, req *models.SaveQuizRequest) (*models.QuizTree, error) {
	log.Printf("[INFO] Starting quiz save for owner %s", ownerID)

	if err := s.validateSaveRequest(req); err != nil {
		log.Printf("[ERROR] Quiz save validation failed: %v", err)
		return nil, err
	}

	quizID, err := s.repo.CreateQuiz(ctx, ownerID, req.Name)
	if err != nil {
		log.Printf("[ERROR] Failed to create quiz in repository: %v", err)
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	for i, round := range req.Rounds {
		roundNumber := i + 1

		roundID, err := s.repo.CreateRound(ctx, quizID, roundNumber, round.Theme)
		if err != nil {
			return nil, s.partialSave(quizID, fmt.Sprintf("create round %d", roundNumber), err)
		}

		questions := lo.Map(round.Questions, func(q models.GeneratedQuestion, idx int) models.Question {
			return models.Question{
				QuestionNumber: idx + 1,
				Category:       q.Category,
				QuestionText:   strings.TrimSpace(q.Question),
				AnswerText:     strings.TrimSpace(q.Answer),
				Media:          mediaFor(q.Category, q.Media()),
			}
		})

		if err := s.repo.InsertQuestions(ctx, roundID, questions); err != nil {
			return nil, s.partialSave(quizID, fmt.Sprintf("insert questions of round %d", roundNumber), err)
		}
		log.Printf("[INFO] Saved round %d with %d questions", roundNumber, len(questions))
	}

	tree, err := s.repo.GetQuizTree(ctx, quizID)
	if err != nil {
		log.Printf("[ERROR] Failed to reload saved quiz %s: %v", quizID, err)
		return nil, fmt.Errorf("failed to reload quiz: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.IndexQuiz(ctx, tree); err != nil {
			log.Printf("[WARN] Failed to archive questions of quiz %s: %v", quizID, err)
		}
	}

	log.Printf("[INFO] Successfully saved quiz %s with %d rounds and %d questions", quizID, len(tree.Rounds), tree.QuestionCount())
	return tree, nil
}

func (s *QuizStoreService) partialSave(quizID, step string, err error) error {
	perr := &PartialSaveError{QuizID: quizID, Step: step, Err: err}
	log.Printf("[ERROR] %v", perr)
	return perr
}

func (s *QuizStoreService) ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error) {
	log.Printf("[INFO] Starting list quizzes for owner %s", ownerID)

	quizzes, err := s.repo.ListQuizzes(ctx, ownerID)
	if err != nil {
		log.Printf("[ERROR] Failed to list quizzes: %v", err)
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}

	log.Printf("[INFO] Successfully retrieved %d quizzes", len(quizzes))
	return quizzes, nil
}

// GetQuizTree returns the full quiz. Quizzes of other owners are reported
// as not found.
func (s *QuizStoreService) GetQuizTree(ctx context.Context, ownerID, id string) (*models.QuizTree, error) {
	log.Printf("[INFO] Starting get quiz %s", id)

	if _, err := uuid.Parse(id); err != nil {
		log.Printf("[ERROR] Invalid quiz ID provided: %q", id)
		return nil, fmt.Errorf("%w: invalid quiz ID %q", ErrInvalidQuiz, id)
	}

	tree, err := s.repo.GetQuizTree(ctx, id)
	if err != nil {
		log.Printf("[ERROR] Failed to get quiz %s: %v", id, err)
		return nil, err
	}

	if tree.OwnerID != ownerID {
		log.Printf("[WARN] Owner %s requested quiz %s of another owner", ownerID, id)
		return nil, fmt.Errorf("quiz with id %s: %w", id, db.ErrQuizNotFound)
	}

	log.Printf("[INFO] Successfully retrieved quiz %s", id)
	return tree, nil
}

func (s *QuizStoreService) DeleteQuiz(ctx context.Context, ownerID, id string) error {
	log.Printf("[INFO] Starting delete quiz %s", id)

	if _, err := s.GetQuizTree(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		log.Printf("[ERROR] Failed to delete quiz %s: %v", id, err)
		return err
	}

	if s.archive != nil {
		if err := s.archive.DeleteQuiz(ctx, id); err != nil {
			log.Printf("[WARN] Failed to remove archived questions of quiz %s: %v", id, err)
		}
	}

	log.Printf("[INFO] Successfully deleted quiz %s", id)
	return nil
}

func (s *QuizStoreService) validateSaveRequest(req *models.SaveQuizRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request cannot be nil", ErrInvalidQuiz)
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("%w: quiz name is required", ErrInvalidQuiz)
	}

	if len(req.Rounds) == 0 {
		return fmt.Errorf("%w: at least one round is required", ErrInvalidQuiz)
	}

	for i, round := range req.Rounds {
		if len(round.Questions) == 0 {
			return fmt.Errorf("%w: round %d has no questions", ErrInvalidQuiz, i+1)
		}
		req.Rounds[i].Theme = strings.TrimSpace(round.Theme)

		for j, q := range round.Questions {
			if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
				return fmt.Errorf("%w: question %d in round %d needs both question and answer text", ErrInvalidQuiz, j+1, i+1)
			}
			if !q.Category.Valid() {
				return fmt.Errorf("%w: question %d in round %d has unknown type %q", ErrInvalidQuiz, j+1, i+1, q.Category)
			}
			// Unset offsets take their defaults, so check the window as played.
			start, end := q.Media().ClipWindow()
			if start < 0 {
				return fmt.Errorf("%w: question %d in round %d has a negative clip start", ErrInvalidQuiz, j+1, i+1)
			}
			if end <= start {
				return fmt.Errorf("%w: question %d in round %d has a clip that ends before it starts", ErrInvalidQuiz, j+1, i+1)
			}
		}
	}

	return nil
}

// mediaFor keeps only the media a category may carry: clips for music and
// film, audio previews for music, images for picture questions.
func mediaFor(c models.Category, m models.Media) models.Media {
	var out models.Media
	if c.MediaKind() == models.MediaVideo && m.HasVideo() {
		out.YouTubeVideoID = m.YouTubeVideoID
		out.YouTubeStartSeconds = m.YouTubeStartSeconds
		out.YouTubeEndSeconds = m.YouTubeEndSeconds
	}
	if c == models.CategoryMusic {
		out.AudioPreviewURL = m.AudioPreviewURL
	}
	if c.MediaKind() == models.MediaImage {
		out.ImageURL = m.ImageURL
	}
	return out
}
