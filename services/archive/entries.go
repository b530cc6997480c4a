package archive

import (
	"fmt"

	"quiznight/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
)

type entry struct {
	OwnerID    string
	QuizID     string
	QuestionID string
	Round      int
	Theme      string
	Category   models.Category
	Question   string
	Answer     string
}

func entriesFor(tree *models.QuizTree) []entry {
	if tree == nil {
		return nil
	}
	var entries []entry
	for _, round := range tree.Rounds {
		for _, q := range round.Questions {
			entries = append(entries, entry{
				OwnerID:    tree.OwnerID,
				QuizID:     tree.ID,
				QuestionID: q.ID,
				Round:      round.RoundNumber,
				Theme:      round.Theme,
				Category:   q.Category,
				Question:   q.QuestionText,
				Answer:     q.AnswerText,
			})
		}
	}
	return entries
}

// Vector ids start with the quiz id so a quiz can be removed by prefix.
func quizPrefix(quizID string) string {
	return quizID + "#"
}

func (e entry) vectorID() string {
	return quizPrefix(e.QuizID) + e.QuestionID
}

func (e entry) embeddingText() string {
	return fmt.Sprintf("Theme: %s\nQuestion: %s\nAnswer: %s", e.Theme, e.Question, e.Answer)
}

func (e entry) metadata() map[string]any {
	return map[string]any{
		"user_id":  e.OwnerID,
		"quiz_id":  e.QuizID,
		"round":    e.Round,
		"theme":    e.Theme,
		"category": string(e.Category),
		"question": e.Question,
		"answer":   e.Answer,
	}
}

func similarityFilter(ownerID string, category models.Category) map[string]any {
	filter := map[string]any{
		"category": map[string]any{"$eq": string(category)},
	}
	if ownerID != "" {
		filter["user_id"] = map[string]any{"$eq": ownerID}
	}
	return filter
}

func questionsFromMatches(matches []*pinecone.ScoredVector) []string {
	questions := make([]string, 0, len(matches))
	for _, match := range matches {
		if match == nil || match.Vector == nil || match.Vector.Metadata == nil {
			continue
		}
		metadata := match.Vector.Metadata.AsMap()
		question, _ := metadata["question"].(string)
		if question == "" {
			continue
		}
		if answer, ok := metadata["answer"].(string); ok && answer != "" {
			question = fmt.Sprintf("%s (answer: %s)", question, answer)
		}
		questions = append(questions, question)
	}
	return questions
}
