package llm

import "context"

// Options bound one generation call. Zero values mean provider defaults.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
	JSONResponse    bool // ask the model for application/json output
}

type Generator interface {
	// GenerateText returns the full model reply for one prompt. The reply is
	// loosely structured text; callers own any parsing and fallbacks.
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}
