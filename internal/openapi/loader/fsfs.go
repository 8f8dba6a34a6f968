package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// loadFS reads a document from the configured filesystem. Names follow fs.FS
// semantics: unrooted and slash-separated.
func (l *Loader) loadFS(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("openapi loader: %q is not a valid fs path", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", name, err)
	}
	return data, nil
}
