// Package sanitize makes proposed filenames safe. It keeps two deliberately
// separate passes: Clean is the generic invalid-character pass applied to
// resolved placeholder values, ForTarget is the OS-target pass applied to
// fully-assembled filenames. IsValidFilename is the terminal gate run after
// both.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the hard cap enforced by both truncation and the
// validity gate.
const MaxFilenameLength = 200

// invalidChars is the fixed invalid-character class shared by both passes.
// Control characters 0x00-0x1F are handled separately.
const invalidChars = `<>:"/\|?*`

// reservedStems are Windows device names that cannot be used as a filename
// stem, compared case-insensitively against the part before the first dot.
var reservedStems = func() map[string]struct{} {
	list := []string{
		"CON", "PRN", "AUX", "NUL",
		"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
		"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
	}
	m := make(map[string]struct{}, len(list))
	for _, s := range list {
		m[s] = struct{}{}
	}
	return m
}()

func isInvalidChar(r rune) bool {
	return r < 0x20 || strings.ContainsRune(invalidChars, r)
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == ' ' || r == '\t'
}

// Clean is the generic stage-1 sanitizer. Invalid characters become '_',
// runs of separators collapse to a single '_', the result is trimmed and
// truncated to MaxFilenameLength preferring a separator boundary.
func Clean(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isInvalidChar(r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}

	out := collapseSeparatorRuns(b.String())
	out = strings.TrimFunc(out, isSeparator)

	if len(out) > MaxFilenameLength {
		out = truncateAtBoundary(out, MaxFilenameLength)
		out = strings.TrimRightFunc(out, isSeparator)
	}

	return out
}

// collapseSeparatorRuns replaces every maximal run of two or more separator
// characters with a single '_'. Lone separators are left alone so single
// spaces and hyphens inside titles survive.
func collapseSeparatorRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !isSeparator(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}
		if j-i >= 2 {
			b.WriteRune('_')
		} else {
			b.WriteRune(runes[i])
		}
		i = j
	}
	return b.String()
}

// runeSafeCut returns the longest prefix of s within max bytes that ends
// on a rune boundary.
func runeSafeCut(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// truncateAtBoundary cuts s to at most max bytes without splitting a rune,
// preferring the last separator found within the final 20% of the
// truncated length.
func truncateAtBoundary(s string, max int) string {
	cut := runeSafeCut(s, max)
	window := max - max/5
	if window < len(cut) {
		if idx := strings.LastIndexFunc(cut[window:], isSeparator); idx >= 0 {
			return cut[:window+idx]
		}
	}
	return cut
}

// ChangeType classifies one correction made by the OS-target pass
type ChangeType string

const (
	ChangeCharReplacement ChangeType = "char_replacement"
	ChangeReservedName    ChangeType = "reserved_name"
	ChangeTruncation      ChangeType = "truncation"
	ChangeTrailingFix     ChangeType = "trailing_fix"
)

// Change records a single typed correction. Sanitization never silently
// changes output: every modification is traceable through one of these.
type Change struct {
	Type        ChangeType `json:"type"`
	Original    string     `json:"original"`
	Replacement string     `json:"replacement"`
	Message     string     `json:"message"`
}

// Result is the outcome of the OS-target pass
type Result struct {
	Sanitized   string   `json:"sanitized"`
	Original    string   `json:"original"`
	Changes     []Change `json:"changes"`
	WasModified bool     `json:"wasModified"`
}

// ForTarget is the stage-2 OS-target sanitizer applied to a fully-assembled
// proposed filename. Each correction is recorded as a typed change.
func ForTarget(filename string) Result {
	res := Result{Original: filename, Sanitized: filename}
	if filename == "" {
		return res
	}

	result := filename

	// Invalid characters that survived assembly (template literals may
	// introduce them after stage 1 ran on placeholder values)
	if strings.ContainsFunc(result, isInvalidChar) {
		var replaced []rune
		seen := make(map[rune]struct{})
		var b strings.Builder
		for _, r := range result {
			if isInvalidChar(r) {
				if _, ok := seen[r]; !ok {
					seen[r] = struct{}{}
					replaced = append(replaced, r)
				}
				b.WriteRune('_')
			} else {
				b.WriteRune(r)
			}
		}
		res.Changes = append(res.Changes, Change{
			Type:        ChangeCharReplacement,
			Original:    string(replaced),
			Replacement: strings.Repeat("_", len(replaced)),
			Message:     fmt.Sprintf("Replaced invalid characters: %q", string(replaced)),
		})
		result = b.String()
	}

	// Windows reserved stems get a suffix rather than a rejection
	stem := stemOf(result)
	if isReservedStem(stem) {
		ext := result[len(stem):]
		res.Changes = append(res.Changes, Change{
			Type:        ChangeReservedName,
			Original:    stem,
			Replacement: stem + "_file",
			Message:     fmt.Sprintf("%q is a reserved name on Windows", stem),
		})
		result = stem + "_file" + ext
	}

	// Leading and trailing dots or spaces are invalid on Windows
	trimmed := strings.Trim(result, ". ")
	if trimmed != result && trimmed != "" {
		res.Changes = append(res.Changes, Change{
			Type:        ChangeTrailingFix,
			Original:    result,
			Replacement: trimmed,
			Message:     "Removed leading/trailing dots or spaces (invalid on Windows)",
		})
		result = trimmed
	}

	if len(result) > MaxFilenameLength {
		truncated := truncateKeepExt(result, MaxFilenameLength)
		res.Changes = append(res.Changes, Change{
			Type:        ChangeTruncation,
			Original:    result,
			Replacement: truncated,
			Message: fmt.Sprintf("Truncated from %d to %d characters",
				len(result), len(truncated)),
		})
		result = truncated
	}

	res.Sanitized = result
	res.WasModified = result != filename
	return res
}

// stemOf returns the part of a filename before the first dot. A filename
// with no dot is all stem.
func stemOf(name string) string {
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}

func isReservedStem(stem string) bool {
	_, ok := reservedStems[strings.ToUpper(stem)]
	return ok
}

// truncateKeepExt cuts to max bytes while preserving the extension when one
// fits.
func truncateKeepExt(name string, max int) string {
	ext := ""
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		ext = name[idx:]
	}
	if len(ext) >= max {
		return runeSafeCut(name, max)
	}
	stem := name[:len(name)-len(ext)]
	return strings.TrimRight(runeSafeCut(stem, max-len(ext)), ". ") + ext
}

// IsValidFilename is the terminal gate run after both sanitization stages.
// It rejects empty names, names over MaxFilenameLength, any invalid
// character, Windows-reserved stems, and leading or trailing dot or space.
func IsValidFilename(name string) bool {
	if name == "" || len(name) > MaxFilenameLength {
		return false
	}
	if strings.ContainsFunc(name, isInvalidChar) {
		return false
	}
	if isReservedStem(stemOf(name)) {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, " ") ||
		strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return false
	}
	return true
}
