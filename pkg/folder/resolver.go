// Package folder resolves folder-structure patterns into relative directory
// paths. Unlike filename templates, folder resolution is strict: a
// placeholder with no value and no configured fallback fails the whole
// resolution. A partially resolved folder path would scatter files into
// wrong directories, so there is no degraded mode.
package folder

import (
	"strings"

	"github.com/tidyapp/tidy/pkg/casing"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/placeholder"
	"github.com/tidyapp/tidy/pkg/sanitize"
	"github.com/tidyapp/tidy/pkg/template"
	"github.com/tidyapp/tidy/pkg/types"
)

// Resolver turns folder patterns like "{year}/{month}" into relative paths.
type Resolver struct {
	opts  placeholder.Options
	style casing.Style
}

// NewResolver builds a folder resolver. The placeholder options carry the
// configured fallbacks; the casing style is applied per path segment.
func NewResolver(opts placeholder.Options, style casing.Style) *Resolver {
	return &Resolver{opts: opts, style: style}
}

// Validate checks a folder pattern for structural well-formedness without
// resolving it.
func Validate(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New(errors.ErrInvalidPattern, "folder pattern is empty")
	}
	for _, segment := range splitSegments(pattern) {
		if _, err := template.Parse(segment); err != nil {
			return err
		}
	}
	return nil
}

// Resolve evaluates the pattern against one file's context and returns the
// relative folder path. Every placeholder must resolve to a non-empty value
// or have a fallback configured; otherwise the error is MISSING_METADATA
// carrying all missing placeholder names, not just the first.
func (r *Resolver) Resolve(pattern string, ctx types.PlaceholderContext) (string, error) {
	if err := Validate(pattern); err != nil {
		return "", err
	}

	var segments []string
	var missing []string

	for _, raw := range splitSegments(pattern) {
		parsed, err := template.Parse(raw)
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		for _, tok := range parsed.Tokens {
			if tok.Kind == template.TokenLiteral {
				sb.WriteString(tok.Value)
				continue
			}
			rp := placeholder.Resolve(tok.Value, ctx, r.opts)
			if rp.Value == "" && rp.Source != types.SourceFallback {
				missing = append(missing, template.BaseName(tok.Value))
				continue
			}
			sb.WriteString(rp.Value)
		}

		segment := sanitize.Clean(sb.String())
		segment = strings.Trim(segment, ". ")
		if segment == "" {
			continue
		}
		segments = append(segments, casing.Normalize(segment, r.style))
	}

	if len(missing) > 0 {
		return "", errors.New(errors.ErrMissingMetadata,
			"folder pattern requires metadata the file does not have").
			WithDetail("missingFields", missing).
			WithDetail("pattern", pattern)
	}
	if len(segments) == 0 {
		return "", errors.New(errors.ErrInvalidPattern,
			"folder pattern resolved to an empty path").
			WithDetail("pattern", pattern)
	}

	return strings.Join(segments, "/"), nil
}

// splitSegments splits a pattern on both separator styles and drops empty
// segments produced by leading, trailing or doubled separators.
func splitSegments(pattern string) []string {
	normalized := strings.ReplaceAll(pattern, "\\", "/")
	parts := strings.Split(normalized, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
