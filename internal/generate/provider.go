// Package generate produces note content for a topic via an
// OpenAI-compatible chat-completions API.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/noteforge/noteforge/internal/logger"
	"github.com/noteforge/noteforge/internal/retry"
)

const (
	// DefaultEndpoint is used when no base URL is configured.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 60 * time.Second
)

// Config contains configuration for the chat provider.
type Config struct {
	BaseURL        string  // chat-completions endpoint (optional)
	APIKey         string  // API key for authentication
	Model          string  // model identifier (optional)
	Language       string  // note language, e.g. "English"
	Style          string  // note style, e.g. "detailed tutorial"
	TimeoutSeconds int     // per-request timeout in seconds
	MaxTokens      int     // maximum tokens to generate
	Temperature    float64 // sampling temperature
	MaxRetries     int     // retry attempts for retryable failures
}

// ChatProvider generates notes through an OpenAI-compatible API.
type ChatProvider struct {
	client *http.Client
	cfg    Config
	logger *logger.Logger
}

// chatRequest is the chat-completions request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage is a single conversation message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat-completions response payload.
type chatResponse struct {
	ID      string        `json:"id"`
	Model   string        `json:"model"`
	Choices []chatChoice  `json:"choices"`
	Usage   chatUsage     `json:"usage"`
	Error   *chatAPIError `json:"error,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// httpError carries the status code so retry classification can see it.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP error: status=%d, body=%s", e.StatusCode, e.Body)
}

// NewChatProvider creates a provider with defaults applied.
func NewChatProvider(cfg Config, log *logger.Logger) *ChatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &ChatProvider{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		logger: log,
	}
}

// Generate produces Markdown note content for the topic. Retryable API
// failures (timeouts, 429, 5xx) are retried with backoff.
func (p *ChatProvider) Generate(ctx context.Context, topic string) (string, error) {
	req := chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(topic, p.cfg.Language, p.cfg.Style)},
		},
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	content, err := retry.Do(ctx, p.logger, func() (string, error) {
		return p.doRequest(ctx, body)
	}, retry.Config{MaxAttempts: p.cfg.MaxRetries})
	if err != nil {
		return "", fmt.Errorf("generation failed for topic %q: %w", topic, err)
	}

	p.logger.Info("note generated",
		logger.Field{Key: "topic", Value: topic},
		logger.Field{Key: "model", Value: p.cfg.Model},
		logger.Field{Key: "bytes", Value: len(content)})

	return content, nil
}

// doRequest executes a single request against the chat-completions API.
func (p *ChatProvider) doRequest(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", &httpError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s (%s)", resp.Error.Message, resp.Error.Type)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("API returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("API returned empty content")
	}

	p.logger.Debug("chat completion received",
		logger.Field{Key: "model", Value: resp.Model},
		logger.Field{Key: "total_tokens", Value: resp.Usage.TotalTokens})

	return content, nil
}
