// Package placeholder resolves {name} tokens against a per-file context.
// Resolvers are pure functions: they never error, never mutate the context,
// and record the provenance of every value they return. Absence of data
// yields an empty value with literal source, or the configured fallback.
package placeholder

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidyapp/tidy/pkg/sanitize"
	"github.com/tidyapp/tidy/pkg/template"
	"github.com/tidyapp/tidy/pkg/types"
)

// DefaultDateFormat is used by the {date} placeholder when no explicit
// format is given.
const DefaultDateFormat = "YYYY-MM-DD"

// Options controls resolution behavior
type Options struct {
	// Fallback is the global fallback value for unresolved placeholders
	Fallback string

	// Fallbacks maps placeholder names to per-placeholder fallback values,
	// taking precedence over Fallback
	Fallbacks map[string]string

	// SanitizeForFilename runs the generic sanitizer over resolved values
	SanitizeForFilename bool

	// DateFormat overrides the format of the {date} placeholder
	DateFormat string
}

// DefaultOptions returns the options used when callers pass none
func DefaultOptions() Options {
	return Options{SanitizeForFilename: true, DateFormat: DefaultDateFormat}
}

// Resolve maps one placeholder name (possibly carrying a ":format" suffix)
// to a value and its provenance. It never fails: an unresolvable name
// degrades to the configured fallback or an empty literal.
func Resolve(name string, ctx types.PlaceholderContext, opts Options) types.ResolvedPlaceholder {
	base := template.BaseName(name)
	format := template.Format(name)

	var value string
	var source types.Source

	switch base {
	case "date":
		if format == "" {
			format = opts.DateFormat
			if format == "" {
				format = DefaultDateFormat
			}
		}
		t, src := bestTimestamp(ctx)
		value, source = formatIfSet(t, func(t time.Time) string { return FormatDate(t, format) }), src
	case "year":
		t, src := bestTimestamp(ctx)
		value, source = formatIfSet(t, func(t time.Time) string { return t.Format("2006") }), src
	case "month":
		t, src := bestTimestamp(ctx)
		value, source = formatIfSet(t, func(t time.Time) string { return t.Format("01") }), src
	case "day":
		t, src := bestTimestamp(ctx)
		value, source = formatIfSet(t, func(t time.Time) string { return t.Format("02") }), src
	case "title":
		value, source = resolveTitle(ctx)
	case "author":
		value, source = resolveAuthor(ctx)
	case "camera":
		value, source = resolveCamera(ctx)
	case "location":
		value, source = resolveLocation(ctx)
	case "original", "name":
		value, source = ctx.File.Name, types.SourceFilesystem
	case "ext", "extension":
		value, source = ctx.File.Extension, types.SourceFilesystem
	case "size":
		value, source = fmt.Sprintf("%d", ctx.File.Size), types.SourceFilesystem
	case "category":
		value, source = ctx.File.Category.DisplayName(), types.SourceFilesystem
	case "parent", "folder":
		value, source = filepath.Base(filepath.Dir(ctx.File.Path)), types.SourceFilesystem
	default:
		value, source = "", types.SourceLiteral
	}

	if value == "" {
		if fb, ok := fallbackFor(base, opts); ok {
			value, source = fb, types.SourceFallback
		} else {
			source = types.SourceLiteral
		}
	}

	if opts.SanitizeForFilename && value != "" {
		value = sanitize.Clean(value)
	}

	return types.ResolvedPlaceholder{Name: name, Value: value, Source: source}
}

// fallbackFor looks up the configured fallback for a placeholder. A
// per-placeholder entry wins over the global value. An empty configured
// fallback counts as configured.
func fallbackFor(base string, opts Options) (string, bool) {
	if opts.Fallbacks != nil {
		if fb, ok := opts.Fallbacks[base]; ok {
			return fb, true
		}
	}
	if opts.Fallback != "" {
		return opts.Fallback, true
	}
	return "", false
}

// HasFallback reports whether a fallback is configured for the placeholder
func HasFallback(name string, opts Options) bool {
	_, ok := fallbackFor(template.BaseName(name), opts)
	return ok
}

// bestTimestamp picks the most trustworthy timestamp for a file:
// EXIF dateTaken, then PDF creationDate, then Office created, then the
// filesystem modification time. The filesystem time is always present, so
// date resolution never truly fails.
// formatIfSet guards date formatting against the zero time. A file with no
// usable timestamp at all resolves to empty, which routes through the
// regular fallback handling.
func formatIfSet(t time.Time, format func(time.Time) string) string {
	if t.IsZero() {
		return ""
	}
	return format(t)
}

func bestTimestamp(ctx types.PlaceholderContext) (time.Time, types.Source) {
	if ctx.Image != nil && ctx.Image.DateTaken != nil {
		return *ctx.Image.DateTaken, types.SourceEXIF
	}
	if ctx.PDF != nil && ctx.PDF.CreationDate != nil {
		return *ctx.PDF.CreationDate, types.SourceDocument
	}
	if ctx.Office != nil && ctx.Office.Created != nil {
		return *ctx.Office.Created, types.SourceDocument
	}
	return ctx.File.ModifiedAt, types.SourceFilesystem
}

func resolveTitle(ctx types.PlaceholderContext) (string, types.Source) {
	if ctx.PDF != nil && ctx.PDF.Title != "" {
		return ctx.PDF.Title, types.SourceDocument
	}
	if ctx.Office != nil && ctx.Office.Title != "" {
		return ctx.Office.Title, types.SourceDocument
	}
	if ctx.File.Name != "" {
		return ctx.File.Name, types.SourceFilesystem
	}
	return "", types.SourceLiteral
}

// resolveAuthor has no filesystem fallback: author can genuinely be empty
func resolveAuthor(ctx types.PlaceholderContext) (string, types.Source) {
	if ctx.PDF != nil && ctx.PDF.Author != "" {
		return ctx.PDF.Author, types.SourceDocument
	}
	if ctx.Office != nil && ctx.Office.Creator != "" {
		return ctx.Office.Creator, types.SourceDocument
	}
	return "", types.SourceLiteral
}

// corporateSuffixes are stripped from camera make strings
var corporateSuffixes = []string{
	"Corporation", "Corp.", "Corp", "Inc.", "Inc", "Ltd.", "Ltd", "Co.",
}

// resolveCamera combines EXIF make and model. When the model already
// contains the make (case-insensitive) the make is dropped to avoid
// "Canon Canon EOS R5".
func resolveCamera(ctx types.PlaceholderContext) (string, types.Source) {
	if ctx.Image == nil {
		return "", types.SourceLiteral
	}
	make := stripCorporateSuffix(strings.TrimSpace(ctx.Image.CameraMake))
	model := strings.TrimSpace(ctx.Image.CameraModel)

	var combined string
	switch {
	case make == "" && model == "":
		return "", types.SourceLiteral
	case model == "":
		combined = make
	case make == "" || strings.Contains(strings.ToLower(model), strings.ToLower(make)):
		combined = model
	default:
		combined = make + " " + model
	}

	return strings.Join(strings.Fields(combined), " "), types.SourceEXIF
}

func stripCorporateSuffix(make string) string {
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(make, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(make, suffix))
		}
	}
	return make
}

// resolveLocation formats GPS decimal degrees as {lat}{N|S}_{lng}{E|W} with
// four decimal places and absolute values; the hemisphere comes from the
// coordinate's sign.
func resolveLocation(ctx types.PlaceholderContext) (string, types.Source) {
	if ctx.Image == nil || ctx.Image.GPSLatitude == nil || ctx.Image.GPSLongitude == nil {
		return "", types.SourceLiteral
	}
	lat, lng := *ctx.Image.GPSLatitude, *ctx.Image.GPSLongitude

	ns := "N"
	if lat < 0 {
		ns = "S"
	}
	ew := "E"
	if lng < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f%s_%.4f%s", math.Abs(lat), ns, math.Abs(lng), ew), types.SourceEXIF
}

// dateTokens maps template date tokens to Go reference-time layouts,
// longest first so MM is consumed before a stray M.
var dateTokens = [...][2]string{
	{"YYYY", "2006"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// FormatDate renders t using YYYY/MM/DD/HH/mm/ss tokens
func FormatDate(t time.Time, format string) string {
	layout := format
	for _, tok := range dateTokens {
		layout = strings.ReplaceAll(layout, tok[0], tok[1])
	}
	return t.Format(layout)
}
