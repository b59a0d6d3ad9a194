package narrative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/astro-prediction/internal/domain/astro"
	"github.com/yanqian/astro-prediction/pkg/metrics"
	"github.com/yanqian/astro-prediction/pkg/util"
)

const sessionPrefix = "astro"

// Config controls the prompt sent to the provider.
type Config struct {
	TargetYear   int
	SystemPrompt string
	Model        string
}

// GenerateRequest is one single-turn conversation with the provider.
type GenerateRequest struct {
	SessionID string
	System    string
	Prompt    string
}

// Generation is the provider reply.
type Generation struct {
	Text  string
	Usage metrics.TokenUsage
}

// Generator is a text generation provider.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Generation, error)
}

// Composer renders chart data into a prompt and returns the provider text.
type Composer struct {
	cfg         Config
	generator   Generator
	logger      *slog.Logger
	now         func() time.Time
	countTokens func(model, text string) int
}

// NewComposer is a wire provider for the narrative domain.
func NewComposer(cfg Config, generator Generator, logger *slog.Logger) *Composer {
	return &Composer{
		cfg:         cfg,
		generator:   generator,
		logger:      logger.With("component", "narrative.composer"),
		now:         util.NowUTC,
		countTokens: metrics.EstimateTokens,
	}
}

// Compose asks the provider for a forecast in a fresh session. The reply is
// returned with surrounding whitespace trimmed, and a reply that is blank
// after trimming is an error rather than an empty narrative.
func (c *Composer) Compose(ctx context.Context, planets []astro.PlanetEntry, periods []astro.DashaPeriod) (string, error) {
	prompt := BuildPrompt(c.cfg.TargetYear, RenderFacts(c.cfg.TargetYear, planets, periods))
	req := GenerateRequest{
		SessionID: util.SessionID(sessionPrefix, c.now()),
		System:    c.cfg.SystemPrompt,
		Prompt:    prompt,
	}
	c.logger.Info("narrative requested", "session_id", req.SessionID, "prompt_tokens_estimate", c.countTokens(c.cfg.Model, prompt))

	gen, err := c.generator.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}
	text := strings.TrimSpace(gen.Text)
	if text == "" {
		return "", errors.New("generate narrative: provider returned empty text")
	}
	if !gen.Usage.IsZero() {
		c.logger.Info("narrative generated", "session_id", req.SessionID, "usage", gen.Usage)
	}
	return text, nil
}
