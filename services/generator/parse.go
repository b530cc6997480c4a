package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"quiznight/models"
)

// stripFences removes a surrounding ```json or ``` code fence.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseReply decodes the model reply into reply items. It only checks the
// envelope: a JSON object holding a "questions" array of objects.
func parseReply(raw string) ([]replyQuestion, error) {
	cleaned := stripFences(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object: %v", ErrMalformedReply, err)
	}

	field, ok := envelope["questions"]
	if !ok {
		return nil, fmt.Errorf("%w: reply has no questions field", ErrMalformedReply)
	}
	if trimmed := bytes.TrimSpace(field); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: questions is not an array", ErrMalformedReply)
	}

	var items []replyQuestion
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, fmt.Errorf("%w: questions array has invalid items: %v", ErrMalformedReply, err)
	}
	return items, nil
}

// validHint reports whether a search hint satisfies the rule of its
// category. Categories without media accept anything since their hints
// are dropped.
func validHint(c models.Category, hint string) bool {
	hint = strings.TrimSpace(hint)
	switch c.MediaKind() {
	case models.MediaVideo:
		if c == models.CategoryMusic {
			artist, title, ok := strings.Cut(hint, " - ")
			return ok && strings.TrimSpace(artist) != "" && strings.TrimSpace(title) != ""
		}
		return hint != ""
	case models.MediaImage:
		return hint != ""
	case models.MediaNone:
		return true
	}
	return true
}

// toQuestion checks one reply item against its category and converts it.
func toQuestion(c models.Category, item replyQuestion) (models.GeneratedQuestion, error) {
	q := models.GeneratedQuestion{
		Question:   strings.TrimSpace(item.Question),
		Answer:     strings.TrimSpace(item.Answer),
		Category:   c,
		SearchHint: strings.TrimSpace(item.SearchTerm),
	}

	if q.Question == "" || q.Answer == "" {
		return q, fmt.Errorf("%w: empty question or answer", ErrInvalidQuestion)
	}
	if !validHint(c, q.SearchHint) {
		return q, fmt.Errorf("%w: search hint %q does not match %q", ErrInvalidQuestion, q.SearchHint, templateFor(c).HintShape)
	}
	if c.MediaKind() == models.MediaNone {
		q.SearchHint = ""
	}
	return q, nil
}
