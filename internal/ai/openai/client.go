// Package openai talks to OpenAI-compatible chat completion endpoints,
// such as self-hosted vLLM or OpenRouter deployments.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
)

const (
	defaultBaseURL = "http://localhost:8000/v1"
	defaultTimeout = 120 * time.Second
	completionPath = "/chat/completions"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Config describes how to reach the endpoint.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client implements ai.Oracle on top of the chat completions API.
type Client struct {
	http   *resty.Client
	model  string
	logger *zap.Logger
}

var _ ai.Oracle = (*Client)(nil)

// New builds a client from cfg. The model identifier is required.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("openai model is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		httpClient.SetAuthToken(key)
	}

	return &Client{http: httpClient, model: model, logger: logger}, nil
}

// Complete posts a system + user message pair and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, sampling ai.Sampling) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]message, 0, 2)
	if system := strings.TrimSpace(systemPrompt); system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: userPrompt})

	var out chatResponse
	var apiErr errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: sampling.Temperature,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(completionPath)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if resp.IsError() {
		detail := strings.TrimSpace(apiErr.Error.Message)
		if detail == "" {
			detail = strings.TrimSpace(resp.String())
		}
		return "", fmt.Errorf("chat completion: bad status %d: %s", resp.StatusCode(), detail)
	}

	if len(out.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}

	c.logger.Debug("chat completion finished",
		zap.String("finish_reason", out.Choices[0].FinishReason),
		zap.Int("status", resp.StatusCode()),
	)

	return content, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
