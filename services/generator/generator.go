package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"quiznight/models"
)

var (
	ErrMissingPrompt   = errors.New("prompt is required")
	ErrInvalidCount    = errors.New("invalid question count")
	ErrInvalidRequest  = errors.New("invalid generation request")
	ErrNotConfigured   = errors.New("question generator not configured")
	ErrMalformedReply  = errors.New("malformed reply from language model")
	ErrInvalidQuestion = errors.New("invalid question in reply")
	ErrTooFewQuestions = errors.New("too few questions in reply")
)

const (
	DefaultCount  = 20
	MaxCount      = 50
	MaxImageCount = 20

	avoidListSize = 15
)

// Completer sends one prompt to a language model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// History looks up questions used in earlier quizzes that resemble a topic.
type History interface {
	Similar(ctx context.Context, topic string, category models.Category, limit int) ([]string, error)
}

type Service struct {
	completer Completer
	history   History
}

// NewService returns a generator. history may be nil.
func NewService(completer Completer, history History) *Service {
	return &Service{completer: completer, history: history}
}

// Normalize fills defaults and rejects requests the generator cannot serve.
func Normalize(req models.GenerateRequest) (models.GenerateRequest, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return req, ErrMissingPrompt
	}

	if req.Category == "" {
		req.Category = models.CategoryGeneral
	}
	if !req.Category.Valid() {
		return req, fmt.Errorf("%w: unknown question type %q", ErrInvalidRequest, req.Category)
	}

	difficulty, err := models.ParseDifficulty(string(req.Difficulty))
	if err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Difficulty = difficulty

	if req.Count == 0 {
		req.Count = DefaultCount
	}
	if req.Count < 1 || req.Count > MaxCount {
		return req, fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidCount, MaxCount, req.Count)
	}

	if req.Category != models.CategoryPicture {
		req.ImageCount = 0
	}
	if req.ImageCount < 0 || req.ImageCount > MaxImageCount {
		return req, fmt.Errorf("%w: image count must be between 1 and %d, got %d", ErrInvalidCount, MaxImageCount, req.ImageCount)
	}

	return req, nil
}

// IsRequestError reports whether err was caused by the caller's input.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrMissingPrompt) || errors.Is(err, ErrInvalidCount) || errors.Is(err, ErrInvalidRequest)
}

// Generate asks the model for exactly the requested number of questions.
// There is no retry; a reply that cannot be used fails the call.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) ([]models.GeneratedQuestion, error) {
	req, err := Normalize(req)
	if err != nil {
		return nil, err
	}
	if s.completer == nil {
		return nil, ErrNotConfigured
	}

	target := req.TargetCount()
	log.Printf("[INFO] Starting question generation: type=%s difficulty=%s count=%d", req.Category, req.Difficulty, target)

	prompt := buildPrompt(req, s.previouslyUsed(ctx, req))

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[ERROR] Failed to generate LLM response: %v", err)
		return nil, fmt.Errorf("failed to generate LLM response: %w", err)
	}

	items, err := parseReply(raw)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return nil, err
	}

	questions := make([]models.GeneratedQuestion, 0, target)
	var firstInvalid error
	for i, item := range items {
		if len(questions) == target {
			log.Printf("[WARN] Model returned %d questions, keeping the first %d", len(items), target)
			break
		}
		q, err := toQuestion(req.Category, item)
		if err != nil {
			log.Printf("[WARN] Skipping question %d: %v", i+1, err)
			if firstInvalid == nil {
				firstInvalid = err
			}
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) < target {
		if firstInvalid != nil {
			err = fmt.Errorf("only %d of %d questions usable: %w", len(questions), target, firstInvalid)
		} else {
			err = fmt.Errorf("%w: got %d, want %d", ErrTooFewQuestions, len(questions), target)
		}
		log.Printf("[ERROR] %v", err)
		return nil, err
	}

	log.Printf("[INFO] Successfully generated %d %s questions", len(questions), req.Category)
	return questions, nil
}

func (s *Service) previouslyUsed(ctx context.Context, req models.GenerateRequest) []string {
	if s.history == nil {
		return nil
	}
	used, err := s.history.Similar(ctx, req.Prompt, req.Category, avoidListSize)
	if err != nil {
		log.Printf("[WARN] Failed to look up previously used questions: %v", err)
		return nil
	}
	return used
}
