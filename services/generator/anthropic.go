package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const submitQuestionsTool = "submit_questions"

// AnthropicCompleter asks Claude to hand the questions back through a
// single tool call. Plain text replies are accepted as a fallback.
type AnthropicCompleter struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicCompleter(apiKey string) (*AnthropicCompleter, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	log.Printf("[INFO] Anthropic question generator initialized")
	return &AnthropicCompleter{
		client: &client,
		model:  anthropic.ModelClaude4Sonnet20250514,
	}, nil
}

func submitQuestionsToolSpec() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        submitQuestionsTool,
			Description: anthropic.String("Submit the generated quiz questions. Call this exactly once with every question."),
			InputSchema: generateAnthropicSchema[reply](),
		},
	}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("[INFO] Calling Anthropic API for question generation")

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt + "\n\nSubmit the result with the " + submitQuestionsTool + " tool.")),
		},
		Tools: []anthropic.ToolUnionParam{submitQuestionsToolSpec()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	log.Printf("[INFO] Anthropic response: model=%s stop_reason=%s blocks=%d", response.Model, response.StopReason, len(response.Content))
	return replyFromBlocks(response.Content)
}

// replyFromBlocks prefers the submit tool's input and falls back to the
// concatenated text blocks.
func replyFromBlocks(blocks []anthropic.ContentBlockUnion) (string, error) {
	var text strings.Builder
	for _, block := range blocks {
		switch block := block.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if block.Name != submitQuestionsTool {
				continue
			}
			input, err := json.Marshal(block.Input)
			if err != nil {
				return "", fmt.Errorf("failed to read tool input: %w", err)
			}
			return string(input), nil
		case anthropic.TextBlock:
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
