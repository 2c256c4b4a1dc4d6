package ai

import (
	"context"
)

// Generator defines the contract for a schema-constrained generation backend.
// Implementations perform exactly one request/response exchange per call and never
// interpret the returned text.
type Generator interface {
	// Generate returns the raw reply. An empty reply is reported as ErrEmptyResponse;
	// network or backend failures as ErrTransportFailure wrapping the original error.
	Generate(ctx context.Context, req Request) (*Reply, error)
}
