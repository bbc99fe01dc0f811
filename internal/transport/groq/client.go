// Package groq talks to the Groq chat-completion API through the
// OpenAI-compatible client. It holds one client per configured API key and
// rotates keys when the provider rate-limits.
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/wicara-cloud/wicara/internal/domain"
	"github.com/wicara-cloud/wicara/internal/metrics"
	"github.com/wicara-cloud/wicara/internal/usecase/chat"
)

// maxAttempts bounds rate-limit retries across key rotations.
const maxAttempts = 3

// Config holds the completion provider settings.
type Config struct {
	APIKeys     []string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
	RetryWait   time.Duration // pause before retrying after a rate limit
	Logger      *zap.Logger
}

// Client is a chat-completion provider with API-key rotation.
type Client struct {
	clients     []*openai.Client
	model       string
	temperature float32
	maxTokens   int
	topP        float32
	retryWait   time.Duration
	logger      *zap.Logger

	mu  sync.Mutex
	idx int // current key index
}

// NewClient creates a Groq completion client.
func NewClient(cfg *Config) (*Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	clients := make([]*openai.Client, len(cfg.APIKeys))
	for i, key := range cfg.APIKeys {
		clientCfg := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		clients[i] = openai.NewClientWithConfig(clientCfg)
	}

	retryWait := cfg.RetryWait
	if retryWait <= 0 {
		retryWait = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		clients:     clients,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		topP:        cfg.TopP,
		retryWait:   retryWait,
		logger:      logger,
	}, nil
}

// Complete implements chat.Completer. On a rate limit it rotates to the
// next API key and retries, up to maxAttempts attempts; success resets the
// rotation so the primary key is preferred again.
func (c *Client) Complete(
	ctx context.Context, system string, history []chat.Message, user string,
) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: user})

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		TopP:        c.topP,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		start := time.Now()
		resp, err := c.current().CreateChatCompletion(ctx, req)
		duration := time.Since(start)

		if err == nil {
			if len(resp.Choices) == 0 {
				metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
				return "", fmt.Errorf("empty completion response: %w", domain.ErrCompletionProviderError)
			}

			metrics.LLMRequestsTotal.WithLabelValues(c.model, "success").Inc()
			metrics.LLMRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())
			if resp.Usage.TotalTokens > 0 {
				metrics.LLMTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
				metrics.LLMTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
				metrics.LLMTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
			}

			c.resetIndex()
			return resp.Choices[0].Message.Content, nil
		}

		metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
		lastErr = err

		if !isRateLimited(err) {
			return "", parseAPIError(err)
		}

		c.logger.Warn("completion rate limited, rotating API key",
			zap.Int("attempt", attempt+1),
			zap.Int("keys", len(c.clients)),
		)
		c.rotate()

		if attempt+1 < maxAttempts {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("completion canceled: %w", ctx.Err())
			case <-time.After(c.retryWait):
			}
		}
	}

	c.resetIndex()
	return "", fmt.Errorf("all API keys rate limited (%d attempts): %w: %w",
		maxAttempts, domain.ErrRateLimited, lastErr)
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.current().ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (c *Client) current() *openai.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clients[c.idx]
}

func (c *Client) rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = (c.idx + 1) % len(c.clients)
	metrics.LLMKeyRotationsTotal.Inc()
}

func (c *Client) resetIndex() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = 0
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrCompletionProviderError for
// correct 502 mapping at the transport layer.
func parseAPIError(err error) error {
	wrap := domain.ErrCompletionProviderError

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}
