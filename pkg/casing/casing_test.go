package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"spaces", "my vacation photo", []string{"my", "vacation", "photo"}},
		{"underscores", "my_vacation_photo", []string{"my", "vacation", "photo"}},
		{"hyphens", "my-vacation-photo", []string{"my", "vacation", "photo"}},
		{"dots", "my.vacation.photo", []string{"my", "vacation", "photo"}},
		{"mixed separators", "my_vacation-photo 2024", []string{"my", "vacation", "photo", "2024"}},
		{"camelCase boundary", "myVacationPhoto", []string{"my", "Vacation", "Photo"}},
		{"PascalCase boundary", "MyVacationPhoto", []string{"My", "Vacation", "Photo"}},
		{"acronym boundary", "HTMLParser", []string{"HTML", "Parser"}},
		{"acronym then camel", "parseHTMLDocument", []string{"parse", "HTML", "Document"}},
		{"digit to upper boundary", "photo2024Final", []string{"photo2024", "Final"}},
		{"empty", "", nil},
		{"single word", "photo", []string{"photo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWords(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style Style
		want  string
	}{
		{"kebab", "My Vacation Photo", StyleKebabCase, "my-vacation-photo"},
		{"snake", "My Vacation Photo", StyleSnakeCase, "my_vacation_photo"},
		{"camel", "my vacation photo", StyleCamelCase, "myVacationPhoto"},
		{"pascal", "my vacation photo", StylePascalCase, "MyVacationPhoto"},
		{"title", "my vacation photo", StyleTitleCase, "My Vacation Photo"},
		{"capitalize", "my VACATION photo", StyleCapitalize, "My vacation photo"},
		{"lower", "My_Vacation-Photo", StyleLowercase, "my vacation photo"},
		{"upper", "my vacation photo", StyleUppercase, "MY VACATION PHOTO"},
		{"kebab from camel", "myVacationPhoto", StyleKebabCase, "my-vacation-photo"},
		{"kebab from acronym", "HTMLParser", StyleKebabCase, "html-parser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, tt.style))
		})
	}
}

// Style none must be the identity for every input, including strings that
// would otherwise be reshaped by word splitting.
func TestNormalizeNoneIsIdentity(t *testing.T) {
	inputs := []string{
		"", "photo", "My Vacation Photo", "already-kebab-case",
		"weird__double..separators", "MiXeD CaSe", ".hidden", "UPPER",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Normalize(in, StyleNone), in)
	}
}

func TestNormalizeZeroStyleIsIdentity(t *testing.T) {
	// The zero value of Style must behave like none, not fall through to
	// word splitting with space joins.
	inputs := []string{
		"vacation_photo_2024", "My-Mixed_Name.draft", "camelCaseChunk",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Normalize(in, Style("")), in)
	}
	assert.Equal(t, "My Report.PDF", NormalizeFilename("My Report.PDF", Style("")))
	assert.Equal(t, "My Photos/Summer", NormalizeFolderPath("My Photos/Summer", Style(""), false))
}

func TestNormalizeAcronymPreservation(t *testing.T) {
	opts := Options{PreserveAcronyms: true}

	assert.Equal(t, "PDF-report", Normalize("pdf report", StyleKebabCase, opts))
	assert.Equal(t, "API Reference Guide", Normalize("api reference guide", StyleTitleCase, opts))
	assert.Equal(t, "my_GPS_track", Normalize("My GPS Track", StyleSnakeCase, opts))

	// Without the option acronyms follow the style like any other word
	assert.Equal(t, "pdf-report", Normalize("pdf report", StyleKebabCase))
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		style    Style
		want     string
	}{
		{"stem normalized extension lowered", "My Report.PDF", StyleKebabCase, "my-report.pdf"},
		{"hidden file keeps leading dot", ".Hidden_File.TXT", StyleKebabCase, ".hidden-file.txt"},
		{"no extension", "My Report", StyleSnakeCase, "my_report"},
		{"extension never word-split", "archive.tar.GZ", StyleKebabCase, "archive-tar.gz"},
		{"dotfile without extension", ".gitignore", StyleKebabCase, ".gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFilename(tt.filename, tt.style))
		})
	}
}

func TestNormalizeFilenameNoneKeepsEverything(t *testing.T) {
	// none short-circuits: even the extension keeps its case
	assert.Equal(t, "My Report.PDF", NormalizeFilename("My Report.PDF", StyleNone))
}

func TestNormalizeFolderPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		style         Style
		preserveFirst bool
		want          string
	}{
		{"per segment", "My Photos/Summer Trip", StyleKebabCase, false, "my-photos/summer-trip"},
		{"empty segments preserved", "/My Photos/", StyleKebabCase, false, "/my-photos/"},
		{"first segment preserved", "C:/My Photos", StyleKebabCase, true, "C:/my-photos"},
		{"none is identity", "My Photos/Summer", StyleNone, false, "My Photos/Summer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFolderPath(tt.path, tt.style, tt.preserveFirst))
		})
	}
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleKebabCase, ParseStyle("kebab-case"))
	assert.Equal(t, StyleSnakeCase, ParseStyle("snake_case"))
	assert.Equal(t, StyleCamelCase, ParseStyle("camelCase"))
	assert.Equal(t, StylePascalCase, ParseStyle("PascalCase"))
	assert.Equal(t, StyleNone, ParseStyle(""))
	assert.Equal(t, StyleNone, ParseStyle("unknown"))
}
