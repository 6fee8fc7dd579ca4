package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
)

const DefaultModel = "gpt-4o-mini"

// ClientConfig holds credentials for the text generation backend
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client wraps the OpenAI chat completions API behind domain.CompletionClient
type Client struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

// NewClient creates a chat completions client. Retries are disabled: a
// failed completion is reported once and the caller moves on.
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:   openai.NewClient(opts...),
		model: cfg.Model,
		log:   log.With().Str("component", "llm").Str("model", cfg.Model).Logger(),
	}
}

// Complete sends a system/user prompt pair and returns the first choice's text
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerativeAPIFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", domain.ErrMalformedResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug().
		Int64("total_tokens", resp.Usage.TotalTokens).
		Dur("took", time.Since(start)).
		Msg("completion received")

	if content == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrMalformedResponse)
	}
	return content, nil
}
