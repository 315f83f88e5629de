package llm

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("model returned no completion")

// Provider turns a fully rendered prompt into the model's reply text.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options configures any provider.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}
