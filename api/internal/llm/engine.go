package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answered without any text part.
var ErrEmptyResponse = errors.New("llm: empty response")

// Blob is an inline binary part sent alongside the prompt.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Engine is one multimodal model: a text prompt plus an image in, free-form text out.
type Engine interface {
	Name() string
	GetModel() string
	GenerateText(ctx context.Context, prompt string, img Blob) (string, error)
}
