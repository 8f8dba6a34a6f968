package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	pkgopenapi "github.com/goliatone/go-fieldscope/pkg/openapi"
)

// Loader implements pkgopenapi.Loader. Each source kind maps to one fetch
// method; Load owns the question of whether a modality is configured at all.
// Construction helpers live in the top-level fieldscope package.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. The http field stays
// nil, and url sources disabled, unless a client is injected or the fallback
// is enabled. Injected clients are cloned; a clone without its own timeout
// picks up the request timeout.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{fs: options.FileSystem}

	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		l.http = &clone
	case options.AllowHTTPFallback:
		l.http = &http.Client{Timeout: options.RequestTimeout}
	}
	return l
}

// Load fetches the source's bytes and wraps them in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = l.loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		if l.fs == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: filesystem is not configured")
		}
		data, err = l.loadFS(ctx, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.http == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = l.loadURL(ctx, src.Location())
	default:
		err = errors.New("openapi loader: unsupported source kind")
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}

	return pkgopenapi.NewDocument(src, data)
}
