// Package casing implements word splitting and case-style recombination for
// filenames and folder segments.
package casing

import (
	"strings"
	"unicode"
)

// Style is a case normalization style
type Style string

const (
	StyleNone       Style = "none"
	StyleLowercase  Style = "lowercase"
	StyleUppercase  Style = "uppercase"
	StyleCapitalize Style = "capitalize"
	StyleTitleCase  Style = "title-case"
	StyleKebabCase  Style = "kebab-case"
	StyleSnakeCase  Style = "snake_case"
	StyleCamelCase  Style = "camelCase"
	StylePascalCase Style = "PascalCase"
)

// ParseStyle maps a configuration string to a Style, defaulting to none
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowercase", "lower":
		return StyleLowercase
	case "uppercase", "upper":
		return StyleUppercase
	case "capitalize":
		return StyleCapitalize
	case "title-case", "titlecase", "title":
		return StyleTitleCase
	case "kebab-case", "kebabcase", "kebab":
		return StyleKebabCase
	case "snake_case", "snake-case", "snakecase", "snake":
		return StyleSnakeCase
	case "camelcase", "camel-case", "camel":
		return StyleCamelCase
	case "pascalcase", "pascal-case", "pascal":
		return StylePascalCase
	default:
		return StyleNone
	}
}

// wordSeparators are the characters that delimit words before camel-boundary
// splitting kicks in
const wordSeparators = " _-."

// SplitWords splits a string into words. Separator characters are dropped,
// then two camel passes apply: a lowercase-to-uppercase boundary, and an
// acronym-to-word boundary so HTMLParser becomes [HTML Parser].
func SplitWords(input string) []string {
	if input == "" {
		return nil
	}

	var words []string
	for _, raw := range strings.FieldsFunc(input, func(r rune) bool {
		return strings.ContainsRune(wordSeparators, r)
	}) {
		words = append(words, splitCamel(raw)...)
	}
	return words
}

// splitCamel splits one separator-free chunk on case boundaries
func splitCamel(chunk string) []string {
	runes := []rune(chunk)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]

		// lowercase (or digit) followed by uppercase: fooBar -> foo Bar
		lowerToUpper := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur)

		// acronym run followed by a capitalized word: HTMLParser -> HTML Parser
		acronymEnd := i+1 < len(runes) &&
			unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(runes[i+1])

		if lowerToUpper {
			words = append(words, string(runes[start:i]))
			start = i
		} else if acronymEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// Options tweaks recombination behavior
type Options struct {
	// PreserveAcronyms keeps known acronyms (PDF, API, URL, ...) upper-cased
	// regardless of style
	PreserveAcronyms bool
}

// Normalize applies a case style to s. Style none and the zero style are
// the identity and short-circuit before any word splitting.
func Normalize(s string, style Style, opts ...Options) string {
	if style == StyleNone || style == "" || s == "" {
		return s
	}
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	words := SplitWords(s)
	if len(words) == 0 {
		return s
	}

	cased := make([]string, len(words))
	for i, w := range words {
		cased[i] = caseWord(w, style, i == 0, opt)
	}

	switch style {
	case StyleKebabCase:
		return strings.Join(cased, "-")
	case StyleSnakeCase:
		return strings.Join(cased, "_")
	case StyleCamelCase, StylePascalCase:
		return strings.Join(cased, "")
	default:
		return strings.Join(cased, " ")
	}
}

// caseWord cases a single word per style. first marks the first word, which
// matters for capitalize and camelCase.
func caseWord(w string, style Style, first bool, opt Options) string {
	if opt.PreserveAcronyms && IsAcronym(w) {
		return strings.ToUpper(w)
	}

	switch style {
	case StyleLowercase, StyleKebabCase, StyleSnakeCase:
		return strings.ToLower(w)
	case StyleUppercase:
		return strings.ToUpper(w)
	case StyleCapitalize:
		if first {
			return capitalizeWord(w)
		}
		return strings.ToLower(w)
	case StyleTitleCase, StylePascalCase:
		return capitalizeWord(w)
	case StyleCamelCase:
		if first {
			return strings.ToLower(w)
		}
		return capitalizeWord(w)
	default:
		return w
	}
}

// capitalizeWord upper-cases the first rune and lower-cases the rest
func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	out := strings.ToUpper(string(runes[0]))
	if len(runes) > 1 {
		out += strings.ToLower(string(runes[1:]))
	}
	return out
}

// NormalizeFilename applies a case style to a filename's stem only. A leading
// dot (hidden file) is stripped before processing and reattached untouched;
// for the concrete styles the extension is lowercased and never word-split.
// Style none returns the filename verbatim, extension included.
func NormalizeFilename(filename string, style Style, opts ...Options) string {
	if filename == "" || style == StyleNone || style == "" {
		return filename
	}

	prefix := ""
	working := filename
	if strings.HasPrefix(working, ".") {
		prefix = "."
		working = working[1:]
	}

	stem, ext := working, ""
	if idx := strings.LastIndexByte(working, '.'); idx > 0 {
		stem, ext = working[:idx], working[idx:]
	}

	return prefix + Normalize(stem, style, opts...) + strings.ToLower(ext)
}

// NormalizeFolderPath applies a case style to each path segment
// independently. Empty segments from leading or trailing separators are
// preserved. When preserveFirst is set the first segment (typically a drive
// letter) passes through verbatim.
func NormalizeFolderPath(path string, style Style, preserveFirst bool, opts ...Options) string {
	if path == "" || style == StyleNone || style == "" {
		return path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if i == 0 && preserveFirst {
			continue
		}
		segments[i] = Normalize(seg, style, opts...)
	}
	return strings.Join(segments, "/")
}
