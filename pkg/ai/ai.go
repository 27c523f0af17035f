package ai

import "context"

// GenerateOptions holds configuration for generation requests.
type GenerateOptions struct {
	Model       string  // Model identifier to use for generation
	Temperature float64 // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that overrides the client's default model.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// Client defines the generative text operations used for entity extraction
// and node context generation.
type Client interface {
	GenerateCompletion(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}
