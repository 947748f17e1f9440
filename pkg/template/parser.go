// Package template tokenizes naming patterns like "{year}-{month}-{original}"
// into literal and placeholder tokens. Unknown placeholder names are accepted
// here and resolved (or degraded) later; only structural problems are errors.
package template

import (
	"strings"

	"github.com/tidyapp/tidy/pkg/errors"
)

// TokenKind distinguishes literal runs from placeholder tokens
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenPlaceholder
)

// Token is one segment of a parsed pattern. For placeholder tokens Value is
// the name between the braces, including any ":format" suffix.
type Token struct {
	Kind  TokenKind
	Value string
}

// Parsed is an immutable parse of a pattern string. Parsing is cheap enough
// to repeat; callers may cache but are not required to.
type Parsed struct {
	Pattern      string
	Tokens       []Token
	Placeholders []string
}

// Parse splits pattern into literal runs and {name} placeholders. It fails
// with INVALID_PATTERN when braces are unbalanced or a placeholder is empty.
func Parse(pattern string) (*Parsed, error) {
	p := &Parsed{Pattern: pattern}

	var literal strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '{':
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return nil, errors.Newf(errors.ErrInvalidPattern,
					"unbalanced '{' at position %d in pattern %q", i, pattern)
			}
			name := pattern[i+1 : i+1+end]
			if name == "" {
				return nil, errors.Newf(errors.ErrInvalidPattern,
					"empty placeholder at position %d in pattern %q", i, pattern)
			}
			if strings.ContainsRune(name, '{') {
				return nil, errors.Newf(errors.ErrInvalidPattern,
					"nested '{' inside placeholder in pattern %q", pattern)
			}
			if literal.Len() > 0 {
				p.Tokens = append(p.Tokens, Token{Kind: TokenLiteral, Value: literal.String()})
				literal.Reset()
			}
			p.Tokens = append(p.Tokens, Token{Kind: TokenPlaceholder, Value: name})
			p.Placeholders = append(p.Placeholders, name)
			i += end + 2
		case '}':
			return nil, errors.Newf(errors.ErrInvalidPattern,
				"unbalanced '}' at position %d in pattern %q", i, pattern)
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		p.Tokens = append(p.Tokens, Token{Kind: TokenLiteral, Value: literal.String()})
	}

	return p, nil
}

// HasPlaceholder reports whether name appears in the parsed pattern.
// The comparison ignores a ":format" suffix on the parsed placeholder.
func (p *Parsed) HasPlaceholder(name string) bool {
	for _, ph := range p.Placeholders {
		if BaseName(ph) == name {
			return true
		}
	}
	return false
}

// BaseName strips a ":format" suffix from a placeholder name,
// e.g. "date:YYYY-MM-DD" -> "date".
func BaseName(placeholder string) string {
	if idx := strings.IndexByte(placeholder, ':'); idx >= 0 {
		return placeholder[:idx]
	}
	return placeholder
}

// Format returns the ":format" suffix of a placeholder, or "" when absent.
func Format(placeholder string) string {
	if idx := strings.IndexByte(placeholder, ':'); idx >= 0 {
		return placeholder[idx+1:]
	}
	return ""
}
