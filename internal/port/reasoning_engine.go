package port

import "context"

// CompletionInput carries a composed analysis prompt to a reasoning engine.
type CompletionInput struct {
	Instruction     string
	Excerpt         string
	MaxOutputTokens int
}

// CompletionOutput is the raw text returned by a reasoning engine.
type CompletionOutput struct {
	Text  string
	Model string
}

// ReasoningEngine abstracts the external language model that produces the analysis text.
type ReasoningEngine interface {
	Complete(ctx context.Context, input CompletionInput) (*CompletionOutput, error)
}
