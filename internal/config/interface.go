package config

import (
	"context"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given path and translates them into
	// the format-agnostic model. Implementations fail fast on input-shape
	// errors such as missing required fields.
	Load(ctx context.Context, path string) (*Document, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Document, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, path string) (*Document, error) {
	return f(ctx, path)
}
