package rules

import (
	"path/filepath"
	"strings"

	"github.com/tidyapp/tidy/pkg/errors"
)

// ValidateGlob checks a filename glob pattern eagerly. Supported syntax:
// '*', '?', '[set]', '[!set]' and '{a,b,c}' alternatives. Unbalanced
// brackets or braces, empty character classes, and empty or trailing
// alternatives inside braces are syntax errors, never silent no-matches.
func ValidateGlob(pattern string) error {
	if pattern == "" {
		return errors.New(errors.ErrInvalidPattern, "empty glob pattern")
	}

	braceDepth := 0
	altLen := -1 // length of current alternative, -1 when outside braces
	i := 0
	for i < len(pattern) {
		switch pattern[i] {
		case '[':
			end, err := scanClass(pattern, i)
			if err != nil {
				return err
			}
			if altLen >= 0 {
				altLen++
			}
			i = end
		case ']':
			return errors.Newf(errors.ErrInvalidPattern,
				"unbalanced ']' in glob %q", pattern)
		case '{':
			braceDepth++
			altLen = 0
			i++
		case '}':
			if braceDepth == 0 {
				return errors.Newf(errors.ErrInvalidPattern,
					"unbalanced '}' in glob %q", pattern)
			}
			if altLen == 0 {
				return errors.Newf(errors.ErrInvalidPattern,
					"empty alternative in glob %q", pattern)
			}
			braceDepth--
			if braceDepth == 0 {
				altLen = -1
			}
			i++
		case ',':
			if braceDepth > 0 {
				if altLen == 0 {
					return errors.Newf(errors.ErrInvalidPattern,
						"empty alternative in glob %q", pattern)
				}
				altLen = 0
			} else if altLen >= 0 {
				altLen++
			}
			i++
		default:
			if altLen >= 0 {
				altLen++
			}
			i++
		}
	}
	if braceDepth != 0 {
		return errors.Newf(errors.ErrInvalidPattern,
			"unbalanced '{' in glob %q", pattern)
	}
	return nil
}

// scanClass validates one character class starting at the '[' and returns
// the index just past the closing ']'.
func scanClass(pattern string, start int) (int, error) {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i >= len(pattern) || pattern[i] == ']' {
		return 0, errors.Newf(errors.ErrInvalidPattern,
			"empty character class in glob %q", pattern)
	}
	for i < len(pattern) && pattern[i] != ']' {
		i++
	}
	if i >= len(pattern) {
		return 0, errors.Newf(errors.ErrInvalidPattern,
			"unbalanced '[' in glob %q", pattern)
	}
	return i + 1, nil
}

// MatchGlob matches name against a validated pattern. Brace alternatives
// are expanded and each branch is matched the standard way. Invalid
// patterns surface the validation error.
func MatchGlob(pattern, name string, caseSensitive bool) (bool, error) {
	if err := ValidateGlob(pattern); err != nil {
		return false, err
	}
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
		name = strings.ToLower(name)
	}
	for _, branch := range expandBraces(pattern) {
		matched, err := filepath.Match(translateClass(branch), name)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrInvalidPattern,
				"bad glob %q", pattern)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// expandBraces rewrites "{a,b}" alternatives into the list of concrete
// patterns, recursively for nested braces. Commas inside character classes
// do not split.
func expandBraces(pattern string) []string {
	open := -1
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '{':
			if !inClass {
				if depth == 0 {
					open = i
				}
				depth++
			}
		case '}':
			if !inClass && depth > 0 {
				depth--
				if depth == 0 {
					prefix := pattern[:open]
					suffix := pattern[i+1:]
					var out []string
					for _, alt := range splitAlternatives(pattern[open+1 : i]) {
						out = append(out, expandBraces(prefix+alt+suffix)...)
					}
					return out
				}
			}
		}
	}
	return []string{pattern}
}

// splitAlternatives splits a brace body on top-level commas
func splitAlternatives(body string) []string {
	var alts []string
	depth := 0
	inClass := false
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '{':
			if !inClass {
				depth++
			}
		case '}':
			if !inClass {
				depth--
			}
		case ',':
			if depth == 0 && !inClass {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}
	alts = append(alts, body[start:])
	return alts
}

// translateClass rewrites '[!set]' negation into the '[^set]' form the
// standard matcher understands.
func translateClass(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		b.WriteByte(pattern[i])
		if pattern[i] == '[' && i+1 < len(pattern) && pattern[i+1] == '!' {
			b.WriteByte('^')
			i++
		}
	}
	return b.String()
}
