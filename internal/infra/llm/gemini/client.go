package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Config selects the model and sampling for Gemini calls.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Result is the generated text plus token accounting.
type Result struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client performs text generation through the Google GenAI SDK.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model, temperature: cfg.Temperature}, nil
}

// Generate sends a single-turn prompt with a system instruction.
func (c *Client) Generate(ctx context.Context, system, prompt string) (Result, error) {
	config := &genai.GenerateContentConfig{}
	if strings.TrimSpace(system) != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if c.temperature > 0 {
		config.Temperature = genai.Ptr(c.temperature)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate content: %w", err)
	}

	out := Result{Text: resp.Text()}
	if usage := resp.UsageMetadata; usage != nil {
		out.PromptTokens = int(usage.PromptTokenCount)
		out.CompletionTokens = int(usage.CandidatesTokenCount)
		out.TotalTokens = int(usage.TotalTokenCount)
	}
	return out, nil
}
