package llm

import (
	"context"
	"errors"

	"github.com/yanqian/astro-prediction/internal/domain/narrative"
	"github.com/yanqian/astro-prediction/internal/infra/llm/chatgpt"
	"github.com/yanqian/astro-prediction/pkg/metrics"
)

// ChatCompleter is the part of the ChatGPT client the adapter needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPTGenerator adapts the ChatGPT client to the narrative domain.
type ChatGPTGenerator struct {
	client      ChatCompleter
	model       string
	temperature float32
}

// NewChatGPTGenerator constructs the adapter.
func NewChatGPTGenerator(client ChatCompleter, model string, temperature float32) *ChatGPTGenerator {
	return &ChatGPTGenerator{client: client, model: model, temperature: temperature}
}

// Generate sends the system instruction and prompt as one conversation,
// tagged with the session id.
func (g *ChatGPTGenerator) Generate(ctx context.Context, req narrative.GenerateRequest) (narrative.Generation, error) {
	messages := make([]chatgpt.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, chatgpt.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, chatgpt.Message{Role: "user", Content: req.Prompt})

	resp, err := g.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
		User:        req.SessionID,
	})
	if err != nil {
		return narrative.Generation{}, err
	}
	if len(resp.Choices) == 0 {
		return narrative.Generation{}, errors.New("chatgpt returned no choices")
	}
	return narrative.Generation{
		Text: resp.Choices[0].Message.Content,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ narrative.Generator = (*ChatGPTGenerator)(nil)

// UnconfiguredGenerator fails every call. It stands in when no provider key
// is configured so the rest of the API still starts.
type UnconfiguredGenerator struct{}

func (UnconfiguredGenerator) Generate(context.Context, narrative.GenerateRequest) (narrative.Generation, error) {
	return narrative.Generation{}, errors.New("llm api key is not configured")
}

var _ narrative.Generator = UnconfiguredGenerator{}
