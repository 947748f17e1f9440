// Package extract reads metadata from image, PDF and Office files and
// assembles the UnifiedMetadata map the preview engine consumes. Extraction
// runs with bounded parallelism and retries transient I/O errors with
// jittered backoff. A file whose metadata cannot be read simply contributes
// no entry; extraction failures never fail the batch.
package extract

import (
	"context"
	stderrors "errors"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/logging"
	"github.com/tidyapp/tidy/pkg/types"
)

// Options controls batch extraction.
type Options struct {
	// Workers bounds parallel extractions. Defaults to 4.
	Workers int

	// Retries is the number of additional attempts for transient errors.
	// Defaults to 2.
	Retries int

	// RetryBase is the first backoff delay. Defaults to 50ms; each retry
	// doubles it and adds up to 50% jitter.
	RetryBase time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Retries <= 0 {
		o.Retries = 2
	}
	if o.RetryBase <= 0 {
		o.RetryBase = 50 * time.Millisecond
	}
	return o
}

// Extractor reads per-file metadata.
type Extractor struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an extractor.
func New(opts Options) *Extractor {
	return &Extractor{
		opts:   opts.withDefaults(),
		logger: logging.GetLogger("extract"),
	}
}

// ExtractBatch extracts metadata for every file, keyed by path. The result
// only contains entries for files that yielded at least one metadata
// section. Cancellation drains the workers and returns the CANCELLED error.
func (e *Extractor) ExtractBatch(ctx context.Context, files []types.FileInfo) (map[string]*types.UnifiedMetadata, error) {
	defer logging.LogOperationStart(e.logger, "extract metadata")()

	type result struct {
		path string
		meta *types.UnifiedMetadata
	}

	jobs := make(chan types.FileInfo)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				if meta := e.extractOne(ctx, file); meta != nil {
					results <- result{path: file.Path, meta: meta}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	out := make(map[string]*types.UnifiedMetadata, len(files))
	go func() {
		defer close(done)
		for r := range results {
			out[r.path] = r.meta
		}
	}()

	wg.Wait()
	close(results)
	<-done

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "metadata extraction aborted")
	}
	return out, nil
}

// extractOne dispatches on extension. Failures are logged and swallowed.
func (e *Extractor) extractOne(ctx context.Context, file types.FileInfo) *types.UnifiedMetadata {
	ext := strings.ToLower(file.Extension)

	var meta types.UnifiedMetadata
	var err error

	switch {
	case isEXIFExtension(ext):
		meta.Image, err = withRetry(ctx, e, file.Path, extractImage)
	case ext == "pdf":
		meta.PDF, err = withRetry(ctx, e, file.Path, extractPDF)
	case isOfficeExtension(ext):
		meta.Office, err = withRetry(ctx, e, file.Path, extractOffice)
	default:
		return nil
	}

	if err != nil {
		e.logger.Debug().Err(err).Str("path", file.Path).Msg("metadata extraction failed")
		return nil
	}

	// A section with no fields set carries no information.
	if meta.Image != nil && *meta.Image == (types.ImageMetadata{}) {
		meta.Image = nil
	}
	if meta.PDF != nil && *meta.PDF == (types.PDFMetadata{}) {
		meta.PDF = nil
	}
	if meta.Office != nil && *meta.Office == (types.OfficeMetadata{}) {
		meta.Office = nil
	}
	if meta.Image == nil && meta.PDF == nil && meta.Office == nil {
		return nil
	}
	return &meta
}

// withRetry runs fn with exponential backoff plus jitter on transient
// errors. Parse failures are permanent and returned immediately.
func withRetry[T any](ctx context.Context, e *Extractor, path string, fn func(string) (*T, error)) (*T, error) {
	delay := e.opts.RetryBase

	var lastErr error
	for attempt := 0; attempt <= e.opts.Retries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
			select {
			case <-time.After(delay + jitter):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		v, err := fn(path)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
	}
	return nil, lastErr
}

// isTransient reports whether an error is worth retrying: I/O level
// problems, not missing files or parse failures.
func isTransient(err error) bool {
	if os.IsNotExist(err) || os.IsPermission(err) {
		return false
	}
	var pathErr *os.PathError
	return stderrors.As(err, &pathErr)
}

func isEXIFExtension(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "tiff", "tif", "heic", "dng", "nef", "cr2", "arw":
		return true
	}
	return false
}

func isOfficeExtension(ext string) bool {
	switch ext {
	case "docx", "xlsx", "pptx":
		return true
	}
	return false
}
