package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidyapp/tidy/pkg/ui"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{
			name:     "auto format",
			format:   ui.FormatAuto,
			expected: "auto",
		},
		{
			name:     "table format",
			format:   ui.FormatTable,
			expected: "table",
		},
		{
			name:     "plain format",
			format:   ui.FormatPlain,
			expected: "plain",
		},
		{
			name:     "json format",
			format:   ui.FormatJSON,
			expected: "json",
		},
		{
			name:     "unknown format",
			format:   ui.Format(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{
			name:     "parse auto",
			input:    "auto",
			expected: ui.FormatAuto,
		},
		{
			name:     "parse empty string as auto",
			input:    "",
			expected: ui.FormatAuto,
		},
		{
			name:     "parse table",
			input:    "table",
			expected: ui.FormatTable,
		},
		{
			name:     "parse plain",
			input:    "plain",
			expected: ui.FormatPlain,
		},
		{
			name:     "parse text alias",
			input:    "text",
			expected: ui.FormatPlain,
		},
		{
			name:     "parse json",
			input:    "JSON",
			expected: ui.FormatJSON,
		},
		{
			name:    "reject unknown",
			input:   "yaml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveConcreteFormatUnchanged(t *testing.T) {
	// Concrete formats pass through without touching the terminal.
	assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(nil))
	assert.Equal(t, ui.FormatTable, ui.FormatTable.Resolve(nil))
	assert.Equal(t, ui.FormatPlain, ui.FormatPlain.Resolve(nil))
}
