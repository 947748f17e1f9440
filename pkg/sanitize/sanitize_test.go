package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"scenario b", "Report: Q4/2024 <draft>", "Report_Q4_2024_draft"},
		{"clean input untouched", "vacation-photo_2024", "vacation-photo_2024"},
		{"single spaces survive", "My Quarterly Report", "My Quarterly Report"},
		{"invalid chars replaced", `a<b>c:d"e`, "a_b_c_d_e"},
		{"backslash and pipe", `a\b|c`, "a_b_c"},
		{"control chars replaced", "a\x00b\x1fc", "a_b_c"},
		{"separator runs collapse", "a--b__c  d", "a_b_c_d"},
		{"mixed separator run", "a -_ b", "a_b"},
		{"leading trailing trimmed", "__hello__", "hello"},
		{"empty stays empty", "", ""},
		{"all invalid reduces to empty", "???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanTruncation(t *testing.T) {
	// Build a name longer than the cap with a separator inside the final
	// 20% window of the truncated length.
	long := strings.Repeat("a", 190) + "_" + strings.Repeat("b", 50)
	got := Clean(long)

	assert.LessOrEqual(t, len(got), MaxFilenameLength)
	// Preferred cut is the separator at position 190, not a hard 200 cut.
	assert.Equal(t, strings.Repeat("a", 190), got)

	// No separator in the window: hard cut at the cap.
	solid := strings.Repeat("x", 300)
	assert.Len(t, Clean(solid), MaxFilenameLength)
}

func TestTruncationKeepsRunesWhole(t *testing.T) {
	// Multibyte input whose 200-byte mark falls mid-rune must not leave an
	// orphan continuation byte at the cut.
	long := "a" + strings.Repeat("é", 150)
	got := Clean(long)
	assert.True(t, utf8.ValidString(got), "Clean left invalid UTF-8: %q", got)
	assert.LessOrEqual(t, len(got), MaxFilenameLength)

	res := ForTarget(strings.Repeat("é", 150) + ".txt")
	assert.True(t, utf8.ValidString(res.Sanitized), "ForTarget left invalid UTF-8: %q", res.Sanitized)
	assert.LessOrEqual(t, len(res.Sanitized), MaxFilenameLength)
	assert.True(t, strings.HasSuffix(res.Sanitized, ".txt"))
}

func TestForTargetReservedName(t *testing.T) {
	res := ForTarget("CON.txt")

	assert.True(t, res.WasModified)
	assert.Equal(t, "CON_file.txt", res.Sanitized)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, ChangeReservedName, res.Changes[0].Type)
}

func TestForTargetTrailingFix(t *testing.T) {
	res := ForTarget("report. ")

	assert.True(t, res.WasModified)
	assert.Equal(t, "report", res.Sanitized)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, ChangeTrailingFix, res.Changes[0].Type)
}

func TestForTargetCharReplacement(t *testing.T) {
	res := ForTarget("a<b>.txt")

	assert.True(t, res.WasModified)
	assert.Equal(t, "a_b_.txt", res.Sanitized)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, ChangeCharReplacement, res.Changes[0].Type)
}

func TestForTargetTruncation(t *testing.T) {
	long := strings.Repeat("a", 250) + ".txt"
	res := ForTarget(long)

	assert.True(t, res.WasModified)
	assert.LessOrEqual(t, len(res.Sanitized), MaxFilenameLength)
	assert.True(t, strings.HasSuffix(res.Sanitized, ".txt"))

	var sawTruncation bool
	for _, c := range res.Changes {
		if c.Type == ChangeTruncation {
			sawTruncation = true
		}
	}
	assert.True(t, sawTruncation)
}

func TestForTargetCleanInput(t *testing.T) {
	res := ForTarget("vacation-photo.jpg")

	assert.False(t, res.WasModified)
	assert.Equal(t, "vacation-photo.jpg", res.Sanitized)
	assert.Empty(t, res.Changes)
}

func TestIsValidFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain name", "report.txt", true},
		{"scenario e reserved", "CON.txt", false},
		{"scenario e stem not substring", "CONTACT.txt", true},
		{"reserved lowercase", "nul.pdf", false},
		{"reserved com port", "COM7.log", false},
		{"empty", "", false},
		{"invalid char", "a/b.txt", false},
		{"question mark", "what?.txt", false},
		{"trailing dot", "report.", false},
		{"trailing space", "report ", false},
		{"leading dot", ".hidden", false},
		{"leading space", " report", false},
		{"too long", strings.Repeat("a", 201), false},
		{"exactly max", strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidFilename(tt.input))
		})
	}
}

// The round-trip property: the target pass always yields a valid filename
// for non-empty input, except pathological inputs that reduce to empty.
func TestSanitizeRoundTrip(t *testing.T) {
	inputs := []string{
		"Report: Q4/2024 <draft>", "CON", "CON.txt", "report. ",
		strings.Repeat("a", 300) + ".txt", "normal-file.jpg",
		"mixed<>:chars.pdf", "trailing...", "  padded  ",
	}
	for _, in := range inputs {
		cleaned := Clean(in)
		if cleaned == "" {
			continue // documented edge case
		}
		got := ForTarget(cleaned).Sanitized
		assert.True(t, IsValidFilename(got), "input %q -> %q", in, got)
	}
}
