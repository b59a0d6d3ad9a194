package llm

import (
	"context"
	"log/slog"

	"github.com/yanqian/astro-prediction/internal/domain/narrative"
	"github.com/yanqian/astro-prediction/internal/infra/llm/gemini"
	"github.com/yanqian/astro-prediction/pkg/metrics"
)

// TextGenerator is the part of the Gemini client the adapter needs.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (gemini.Result, error)
}

// GeminiGenerator adapts the Gemini client to the narrative domain. The API
// has no per-call user tag, so the session id is only logged.
type GeminiGenerator struct {
	client TextGenerator
	logger *slog.Logger
}

// NewGeminiGenerator constructs the adapter.
func NewGeminiGenerator(client TextGenerator, logger *slog.Logger) *GeminiGenerator {
	return &GeminiGenerator{client: client, logger: logger.With("component", "llm.gemini")}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req narrative.GenerateRequest) (narrative.Generation, error) {
	g.logger.Debug("gemini generate", "session_id", req.SessionID)
	res, err := g.client.Generate(ctx, req.System, req.Prompt)
	if err != nil {
		return narrative.Generation{}, err
	}
	return narrative.Generation{
		Text: res.Text,
		Usage: metrics.TokenUsage{
			PromptTokens:     res.PromptTokens,
			CompletionTokens: res.CompletionTokens,
			TotalTokens:      res.TotalTokens,
		},
	}, nil
}

var _ narrative.Generator = (*GeminiGenerator)(nil)
