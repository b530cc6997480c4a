package generator

import (
	"context"
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAICompleter generates through langchaingo's OpenAI model.
type OpenAICompleter struct {
	llm llms.Model
}

func NewOpenAICompleter(apiKey, model string) (*OpenAICompleter, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	log.Printf("[INFO] OpenAI question generator initialized with model %s", model)
	return &OpenAICompleter{llm: llm}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("[INFO] Calling LLM for question generation")
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(0.7),
		llms.WithJSONMode(),
	)
}
