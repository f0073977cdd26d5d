package llm

import (
	"context"
	"errors"
)

// Message is a chat message in a provider-agnostic format. The JSON tags
// match the OpenAI-compatible wire shape, which expects lowercase keys.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option sets optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any hosted or local LLM backend.
type Provider interface {
	// Chat sends a message exchange to the model and returns the generated text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ErrEmptyCompletion is returned when the API answers successfully but the
// generated message has no content. Callers treat it like any other remote
// failure: the action is aborted and nothing is stored.
var ErrEmptyCompletion = errors.New("model returned no content")

// ErrUnavailable classifies any transport or API failure from the hosted
// model. The pipeline aborts; there is no retry path.
var ErrUnavailable = errors.New("model service unavailable")
