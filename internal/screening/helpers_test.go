package screening

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/spigell/resume-screener/internal/extraction"
)

// scriptedExtractor decodes canned replies with extraction.ExtractJSON.
type scriptedExtractor struct {
	mu      sync.Mutex
	reply   func(prompt string) (string, error)
	prompts []string
}

func replyWith(raw string) *scriptedExtractor {
	return &scriptedExtractor{reply: func(string) (string, error) { return raw, nil }}
}

func (s *scriptedExtractor) Extract(ctx context.Context, prompt string) (map[string]any, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	raw, err := s.reply(prompt)
	if err != nil {
		return nil, &extraction.DecodeError{Message: "oracle call failed", Cause: err}
	}
	return extraction.ExtractJSON(raw)
}

func (s *scriptedExtractor) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

// textConverter treats document bytes as text; names listed in fail return an error.
type textConverter struct {
	mu    sync.Mutex
	fail  map[string]error
	calls []string
}

func (c *textConverter) Convert(_ context.Context, data []byte, fileName string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, fileName)
	c.mu.Unlock()

	if err, ok := c.fail[fileName]; ok {
		return "", err
	}
	return string(data), nil
}

func (c *textConverter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type stageFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f stageFunc[In, Out]) Validate(In) error { return nil }

func (f stageFunc[In, Out]) Process(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

var errBrokenPDF = errors.New("broken pdf")

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
