// Package scanner walks a folder and produces the FileInfo batch the
// preview engine consumes. It reads directory entries and file metadata
// only; nothing is opened or modified.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/logging"
	"github.com/tidyapp/tidy/pkg/types"
)

// ProgressFunc is invoked periodically during a scan with the number of
// files discovered so far and the most recent filename.
type ProgressFunc func(discovered int, name string)

// Options controls a scan.
type Options struct {
	// Recursive descends into subdirectories. Off by default.
	Recursive bool

	// Extensions filters to the given extensions (without dot), compared
	// case-insensitively. Empty means all files.
	Extensions []string

	// IncludeHidden includes dotfiles. Off by default.
	IncludeHidden bool

	Progress ProgressFunc
}

// Result is the outcome of one scan.
type Result struct {
	Files     []types.FileInfo
	TotalSize int64
}

// Scanner scans folders for files to rename.
type Scanner struct {
	logger zerolog.Logger
}

// New creates a scanner.
func New() *Scanner {
	return &Scanner{logger: logging.GetLogger("scanner")}
}

// Scan walks root and collects FileInfo for every regular file passing the
// filters. Cancellation is checked per entry; a cancelled scan returns the
// CANCELLED error and no partial result.
func (s *Scanner) Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanNotFound, "cannot scan %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrScanNotDir, "%s is not a directory", root)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	res := &Result{}
	discovered := 0

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return errors.Wrap(cerr, errors.ErrCancelled, "scan aborted")
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(d.Name()), ".")
		if len(exts) > 0 && !exts[strings.ToLower(ext)] {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("skipping file without metadata")
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}

		discovered++
		if opts.Progress != nil && (discovered == 1 || discovered%10 == 0) {
			opts.Progress(discovered, d.Name())
		}

		res.Files = append(res.Files, types.FileInfo{
			Path:         filepath.ToSlash(path),
			Name:         strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Extension:    ext,
			FullName:     d.Name(),
			Size:         fi.Size(),
			ModifiedAt:   fi.ModTime().UTC(),
			RelativePath: filepath.ToSlash(rel),
			Category:     CategoryForExtension(ext),
		})
		res.TotalSize += fi.Size()
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	s.logger.Debug().
		Int("files", len(res.Files)).
		Int64("totalSize", res.TotalSize).
		Str("root", root).
		Msg("scan complete")

	return res, nil
}
