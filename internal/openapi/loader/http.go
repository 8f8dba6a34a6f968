package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// loadURL fetches a document over HTTP. The client injected at construction
// carries any timeout; cancellation rides the request context.
func (l *Loader) loadURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("openapi loader: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi loader: %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
