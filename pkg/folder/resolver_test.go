package folder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyapp/tidy/pkg/casing"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/placeholder"
	"github.com/tidyapp/tidy/pkg/types"
)

func photoContext() types.PlaceholderContext {
	taken := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	return types.NewPlaceholderContext(
		types.FileInfo{
			Path:       "/photos/IMG_1234.jpg",
			Name:       "IMG_1234",
			Extension:  "jpg",
			FullName:   "IMG_1234.jpg",
			ModifiedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
			Category:   types.CategoryImage,
		},
		&types.UnifiedMetadata{
			Image: &types.ImageMetadata{
				CameraMake:  "Canon",
				CameraModel: "EOS R5",
				DateTaken:   &taken,
			},
		},
	)
}

// context for a file with no metadata and no filesystem timestamps
func bareContext() types.PlaceholderContext {
	return types.NewPlaceholderContext(
		types.FileInfo{
			Path:     "/docs/notes.txt",
			Name:     "notes",
			FullName: "notes.txt",
		},
		nil,
	)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("{year}/{month}"))
	assert.NoError(t, Validate("Archive/{category}"))

	for _, bad := range []string{"", "   ", "{year/{month}", "{}/{month}"} {
		err := Validate(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern), bad)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		style   casing.Style
		want    string
	}{
		{"date segments", "{year}/{month}", casing.StyleNone, "2024/03"},
		{"literal prefix", "Photos/{year}", casing.StyleNone, "Photos/2024"},
		{"camera segment", "{camera}/{year}", casing.StyleNone, "Canon EOS R5/2024"},
		{"kebab style", "{camera}/{year}", casing.StyleKebabCase, "canon-eos-r5/2024"},
		{"category", "{category}/{year}", casing.StyleNone, "Images/2024"},
		{"doubled separators collapse", "{year}//{month}/", casing.StyleNone, "2024/03"},
		{"backslash separators", "{year}\\{month}", casing.StyleNone, "2024/03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(placeholder.DefaultOptions(), tt.style)
			got, err := r.Resolve(tt.pattern, photoContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMissingMetadataListsAllFields(t *testing.T) {
	r := NewResolver(placeholder.DefaultOptions(), casing.StyleNone)

	_, err := r.Resolve("{year}/{month}", bareContext())
	require.Error(t, err)
	require.True(t, errors.IsErrorCode(err, errors.ErrMissingMetadata))

	var terr *errors.TidyError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, []string{"year", "month"}, terr.Details["missingFields"])
}

func TestResolveFallbackSuppressesMissing(t *testing.T) {
	opts := placeholder.DefaultOptions()
	opts.Fallback = "unknown"
	r := NewResolver(opts, casing.StyleNone)

	got, err := r.Resolve("{year}/{month}", bareContext())
	require.NoError(t, err)
	assert.Equal(t, "unknown/unknown", got)
}

func TestResolvePerPlaceholderFallback(t *testing.T) {
	opts := placeholder.DefaultOptions()
	opts.Fallbacks = map[string]string{"author": "anonymous"}
	r := NewResolver(opts, casing.StyleNone)

	got, err := r.Resolve("{author}/{name}", bareContext())
	require.NoError(t, err)
	assert.Equal(t, "anonymous/notes", got)
}

func TestResolveSanitizesSegments(t *testing.T) {
	ctx := photoContext()
	ctx.Image.CameraMake = "Ca<no>n"
	ctx.Image.CameraModel = "R5: Mark/II"

	r := NewResolver(placeholder.DefaultOptions(), casing.StyleNone)
	got, err := r.Resolve("{camera}/{year}", ctx)
	require.NoError(t, err)

	assert.NotContains(t, got[:len(got)-5], "/")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ":")
}

func TestResolveInvalidPatternBeforeResolution(t *testing.T) {
	r := NewResolver(placeholder.DefaultOptions(), casing.StyleNone)

	_, err := r.Resolve("{year", photoContext())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
}
