// Package extraction turns oracle replies into JSON-shaped values.
//
// It is the only place that knows how replies are sliced and decoded. Every
// failure, including transport errors and timeouts, surfaces as *DecodeError
// so pipeline stages can substitute their documented defaults.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

// SystemPrompt frames the oracle as a structured-information extractor.
const SystemPrompt = "You are a helpful assistant that extracts structured information from resumes and job descriptions. Reply with a single valid JSON object only."

const (
	DefaultTimeout      = 60 * time.Second
	defaultMaxLogLength = 200
)

// DecodeError reports an oracle reply that could not be turned into a JSON object.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode oracle reply: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode oracle reply: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Client sends prompts to an oracle and decodes the replies.
type Client struct {
	oracle    ai.Oracle
	logger    *zap.Logger
	timeout   time.Duration
	sampling  ai.Sampling
	maxLogLen int
}

// Option tweaks a Client.
type Option func(*Client)

// WithTimeout bounds every oracle call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSampling overrides the default low-temperature sampling.
func WithSampling(s ai.Sampling) Option {
	return func(c *Client) {
		c.sampling = s
	}
}

// WithMaxLogLength limits prompt and reply previews in debug logs.
func WithMaxLogLength(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxLogLen = n
		}
	}
}

// New creates a Client for the oracle.
func New(oracle ai.Oracle, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		oracle:    oracle,
		timeout:   DefaultTimeout,
		sampling:  ai.DefaultSampling(),
		maxLogLen: defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(c)
	}

	model := ""
	if oracle != nil {
		model = oracle.Model()
	}
	c.logger = logger.WithFields(log, logger.StringFields(logger.StringField{Key: logger.FieldModel, Value: model})...)

	return c
}

// Call sends the prompt and returns the raw reply.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.oracle == nil {
		return "", errors.New("oracle is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("oracle request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(utils.CollapseWhitespace(prompt), c.maxLogLen)),
	)

	started := time.Now()
	raw, err := c.oracle.Complete(ctx, SystemPrompt, prompt, c.sampling)
	if err != nil {
		return "", err
	}

	c.logger.Debug("oracle response",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(utils.CollapseWhitespace(raw), c.maxLogLen)),
	)

	return raw, nil
}

// Extract calls the oracle and decodes the reply. Any failure is a *DecodeError.
func (c *Client) Extract(ctx context.Context, prompt string) (map[string]any, error) {
	raw, err := c.Call(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &DecodeError{Message: "oracle call timed out", Cause: err}
		}
		return nil, &DecodeError{Message: "oracle call failed", Cause: err}
	}

	return ExtractJSON(raw)
}

// ExtractJSON decodes the text between the first '{' and the last '}' of raw.
func ExtractJSON(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &DecodeError{Message: "no JSON object found in reply"}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil {
		return nil, &DecodeError{Message: "malformed JSON object", Cause: err}
	}

	if data == nil {
		return nil, &DecodeError{Message: "reply is not a JSON object"}
	}

	return data, nil
}
