package loader

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/matter/internal/document"
	"github.com/thoreinstein/matter/internal/document/validator"
	"github.com/thoreinstein/matter/internal/logging"
	"github.com/thoreinstein/matter/pkg/fileutil"
	"github.com/thoreinstein/matter/pkg/frontmatter"
)

// DefaultDebounce is how long Watch waits for a burst of events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Loader reads and validates documents. It holds no mutable state and is
// safe for concurrent use.
type Loader struct {
	logger    *slog.Logger
	validator *validator.Validator
	workers   int
	maxSize   int64
	debounce  time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithValidator replaces the default validator, which requires only title.
func WithValidator(v *validator.Validator) Option {
	return func(l *Loader) {
		if v != nil {
			l.validator = v
		}
	}
}

// WithWorkers bounds LoadAll concurrency. Values <= 0 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(l *Loader) { l.workers = n }
}

// WithMaxFileSize caps the size of a single document.
func WithMaxFileSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithDebounce sets the quiet period Watch waits before reloading.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		if d >= 0 {
			l.debounce = d
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:    logging.NewDiscard(),
		validator: validator.New(),
		maxSize:   fileutil.DefaultMaxFileSize,
		debounce:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadBytes builds a document from data. path only identifies the document
// in errors and may be empty.
//
// Malformed input yields a nil document and a *LoadError. A document that
// is well formed but fails validation is returned together with a
// *validator.ValidationError.
func (l *Loader) LoadBytes(data []byte, path string) (*document.Document, error) {
	block, meta, err := frontmatter.Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	l.logger.Log(context.Background(), logging.LevelTrace, "front matter decoded",
		"path", path,
		"style", block.Style,
		"fields", len(meta))

	doc := document.New(path, data, block, meta)
	if err := l.validator.ValidateDocument(path, meta); err != nil {
		return doc, err
	}
	return doc, nil
}

// Load reads r to the end and builds a document from it.
func (l *Loader) Load(r io.Reader, path string) (*document.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "reading document")}
	}
	if int64(len(data)) > l.maxSize {
		return nil, &LoadError{Path: path, Err: errors.Wrapf(fileutil.ErrFileTooLarge, "limit %d", l.maxSize)}
	}
	return l.LoadBytes(data, path)
}

// LoadFile reads and builds the document stored at path.
func (l *Loader) LoadFile(path string) (*document.Document, error) {
	data, err := fileutil.ReadFile(path, l.maxSize)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return l.LoadBytes(data, path)
}

// Result is the outcome of loading one file in a batch. Document is set
// whenever the file was well formed, even if Err reports validation
// problems.
type Result struct {
	Path     string
	Document *document.Document
	Err      error
}

// Valid reports whether the file loaded without any problem.
func (r Result) Valid() bool {
	return r.Err == nil
}

// LoadAll loads paths concurrently with a worker pool limited to the
// configured worker count. Results are returned in input order and one
// file's failure never affects another. Files not yet started when ctx is
// cancelled report ctx.Err().
func (l *Loader) LoadAll(ctx context.Context, paths []string) []Result {
	if len(paths) == 0 {
		return nil
	}

	workers := l.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(paths) < workers {
		workers = len(paths)
	}

	results := make([]Result, len(paths))
	work := make(chan int, len(paths))
	for i := range paths {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = l.loadOne(ctx, paths[i])
			}
		}()
	}
	wg.Wait()

	l.logger.Debug("batch loaded", "files", len(paths), "workers", workers)
	return results
}

func (l *Loader) loadOne(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: &LoadError{Path: path, Err: err}}
	}

	doc, err := l.LoadFile(path)
	if err != nil {
		l.logger.Info("document has problems", "path", path, "error", err)
	} else {
		l.logger.Debug("document loaded", "path", path, "style", doc.Style())
	}
	return Result{Path: path, Document: doc, Err: err}
}
