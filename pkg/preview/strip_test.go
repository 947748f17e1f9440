package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripExistingPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso date prefix", "2023-01-01_photo", "photo"},
		{"underscore date prefix", "2023_01_01 photo", "photo"},
		{"compact date prefix", "20230101_photo", "photo"},
		{"european date prefix", "01-02-2023_scan", "scan"},
		{"trailing date", "photo_2023-01-01", "photo"},
		{"trailing counter", "photo_001", "photo"},
		{"parenthesized counter", "photo(2)", "photo"},
		{"no patterns", "vacation photo", "vacation photo"},
		{"only a date keeps original", "2023-01-01", "2023-01-01"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripExistingPatterns(tt.input))
		})
	}
}
