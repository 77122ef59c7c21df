package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrInvalidJSON is returned when the model answers with something that is
// not parseable as the requested JSON payload.
var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

// Client is the narrow surface the classifier needs from a model provider.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}
