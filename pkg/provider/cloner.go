package provider

import (
	"context"
)

// Cloner creates a reusable voice identity from an uploaded audio sample.
type Cloner interface {
	Upload(ctx context.Context, path string) (*FileUpload, error)
	Clone(ctx context.Context, request CloneRequest) (*Clone, error)
}

type CloneRequest struct {
	FileID string
	Model  string

	Text       string
	SampleText string
}

// Prober performs a lightweight reachability call against a provider.
type Prober interface {
	Name() string
	Configured() bool

	Probe(ctx context.Context) error
}
