package ai

import (
	"context"
)

// DefaultTemperature keeps replies close to deterministic for structured extraction.
const DefaultTemperature float32 = 0.1

// Sampling controls how the oracle samples its reply.
type Sampling struct {
	Temperature float32
}

// DefaultSampling returns the low-temperature setting used by every pipeline stage.
func DefaultSampling() Sampling {
	return Sampling{Temperature: DefaultTemperature}
}

// Oracle is a language model that answers a user prompt under a system instruction.
// Implementations return the raw textual reply; parsing is left to the caller.
type Oracle interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, sampling Sampling) (string, error)
	Model() string
}
