package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// loadFile reads a document from the operating system disk. The path is made
// absolute first so errors name the file unambiguously.
func (l *Loader) loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: resolve %s: %w", path, err)
	}
	return os.ReadFile(abs)
}
