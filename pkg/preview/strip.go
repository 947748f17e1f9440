package preview

import (
	"regexp"
	"strings"
)

// Patterns removed from a filename stem when strip-existing-patterns is
// enabled. Stripping makes template application idempotent: running the
// same date-prefix template twice produces the same name.
var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}[-_]\d{2}[-_]\d{2}[-_ ]?`),
		regexp.MustCompile(`^\d{8}[-_ ]?`),
		regexp.MustCompile(`^\d{2}[-_]\d{2}[-_]\d{4}[-_ ]?`),
		regexp.MustCompile(`[-_ ]\d{4}[-_]?\d{2}[-_]?\d{2}$`),
	}

	counterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[-_ ]\d{1,4}$`),
		regexp.MustCompile(`\(\d{1,4}\)$`),
	}
)

// StripExistingPatterns removes leading/trailing date stamps and trailing
// counters from a filename stem. If stripping would leave nothing, the
// original name is returned unchanged.
func StripExistingPatterns(name string) string {
	if name == "" {
		return name
	}

	result := name
	for _, re := range datePatterns {
		result = re.ReplaceAllString(result, "")
	}
	for _, re := range counterPatterns {
		result = re.ReplaceAllString(result, "")
	}

	result = strings.Trim(result, "-_ ")
	if result == "" {
		return name
	}
	return result
}
