package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

func testTemplates() []types.Template {
	return []types.Template{
		{ID: "tpl-date", Name: "Date prefix", Pattern: "{date}_{name}"},
		{ID: "tpl-camera", Name: "Camera", Pattern: "{camera}_{date}"},
		{ID: "tpl-plain", Name: "Plain", Pattern: "{name}", IsDefault: true},
	}
}

func imageFile() types.FileInfo {
	return types.FileInfo{
		Name:      "IMG_1234",
		Extension: "jpg",
		FullName:  "IMG_1234.jpg",
		Category:  types.CategoryImage,
	}
}

func canonMeta() *types.UnifiedMetadata {
	return &types.UnifiedMetadata{
		Image: &types.ImageMetadata{CameraMake: "Canon", CameraModel: "EOS R5"},
	}
}

func TestNewResolverValidatesFilenameRules(t *testing.T) {
	_, err := NewResolver(Config{
		Templates: testTemplates(),
		FilenameRules: []types.FilenameRule{
			{ID: "bad", Name: "broken", Pattern: "[abc", Enabled: true, TemplateID: "tpl-plain"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
}

func TestNewResolverSkipsDisabledPatternValidation(t *testing.T) {
	_, err := NewResolver(Config{
		Templates: testTemplates(),
		FilenameRules: []types.FilenameRule{
			{ID: "bad", Name: "broken", Pattern: "[abc", Enabled: false, TemplateID: "tpl-plain"},
		},
	})
	require.NoError(t, err)
}

func TestResolverDefaultTemplate(t *testing.T) {
	t.Run("marked default wins", func(t *testing.T) {
		r, err := NewResolver(Config{Templates: testTemplates()})
		require.NoError(t, err)
		assert.Equal(t, "tpl-plain", r.DefaultTemplate().ID)
	})

	t.Run("first template when none marked", func(t *testing.T) {
		r, err := NewResolver(Config{Templates: []types.Template{
			{ID: "a", Name: "A", Pattern: "{name}"},
			{ID: "b", Name: "B", Pattern: "{date}"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "a", r.DefaultTemplate().ID)
	})

	t.Run("builtin when no templates at all", func(t *testing.T) {
		r, err := NewResolver(Config{})
		require.NoError(t, err)
		assert.Equal(t, "{name}", r.DefaultTemplate().Pattern)
	})
}

func TestResolveNoRulesUsesDefault(t *testing.T) {
	r, err := NewResolver(Config{Templates: testTemplates()})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, "tpl-plain", res.Template.ID)
	assert.Equal(t, types.TemplateSourceDefault, res.TemplateSource)
	assert.Empty(t, res.RuleID)
	assert.Nil(t, res.FolderStructure)
}

func TestResolveMetadataRule(t *testing.T) {
	r, err := NewResolver(Config{
		Templates: testTemplates(),
		FolderStructures: []types.FolderStructure{
			{ID: "by-camera", Name: "By camera", Pattern: "{camera}", Enabled: true},
		},
		MetadataRules: []types.MetadataRule{
			{
				ID: "m1", Name: "Canon photos", Enabled: true,
				TemplateID: "tpl-camera", FolderStructureID: "by-camera",
				Conditions: []types.RuleCondition{
					{Field: "image.make", Operator: types.OpEquals, Value: "canon"},
				},
			},
		},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), canonMeta())
	assert.Equal(t, "tpl-camera", res.Template.ID)
	assert.Equal(t, types.TemplateSourceRule, res.TemplateSource)
	assert.Equal(t, "m1", res.RuleID)
	require.NotNil(t, res.FolderStructure)
	assert.Equal(t, "by-camera", res.FolderStructure.ID)
}

func TestResolveCaseSensitiveCondition(t *testing.T) {
	rule := types.MetadataRule{
		ID: "m1", Name: "Canon exact", Enabled: true, CaseSensitive: true,
		TemplateID: "tpl-camera",
		Conditions: []types.RuleCondition{
			{Field: "image.make", Operator: types.OpEquals, Value: "canon"},
		},
	}
	r, err := NewResolver(Config{Templates: testTemplates(), MetadataRules: []types.MetadataRule{rule}})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), canonMeta())
	assert.Equal(t, types.TemplateSourceDefault, res.TemplateSource)
}

func TestResolveEmptyConditionsNeverMatch(t *testing.T) {
	r, err := NewResolver(Config{
		Templates: testTemplates(),
		MetadataRules: []types.MetadataRule{
			{ID: "m1", Name: "no conditions", Enabled: true, TemplateID: "tpl-camera"},
		},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), canonMeta())
	assert.Equal(t, types.TemplateSourceDefault, res.TemplateSource)
}

func TestResolveFilenameRule(t *testing.T) {
	r, err := NewResolver(Config{
		Templates: testTemplates(),
		FilenameRules: []types.FilenameRule{
			{ID: "f1", Name: "camera dumps", Pattern: "IMG_*.{jpg,png}", Enabled: true, TemplateID: "tpl-date"},
		},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, "f1", res.RuleID)
	assert.Equal(t, "tpl-date", res.Template.ID)
	assert.Equal(t, types.TemplateSourceRule, res.TemplateSource)
}

func TestResolvePriorityOrdering(t *testing.T) {
	low := types.FilenameRule{
		ID: "low", Name: "low", Pattern: "IMG_*", Enabled: true, Priority: 1, TemplateID: "tpl-plain",
	}
	high := types.FilenameRule{
		ID: "high", Name: "high", Pattern: "*.jpg", Enabled: true, Priority: 10, TemplateID: "tpl-date",
	}

	r, err := NewResolver(Config{
		Templates:     testTemplates(),
		FilenameRules: []types.FilenameRule{low, high},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, "high", res.RuleID)
}

func TestResolveEqualPriorityKeepsConfiguredOrder(t *testing.T) {
	first := types.FilenameRule{
		ID: "first", Name: "first", Pattern: "*.jpg", Enabled: true, Priority: 5, TemplateID: "tpl-date",
	}
	second := types.FilenameRule{
		ID: "second", Name: "second", Pattern: "IMG_*", Enabled: true, Priority: 5, TemplateID: "tpl-camera",
	}

	r, err := NewResolver(Config{
		Templates:     testTemplates(),
		FilenameRules: []types.FilenameRule{first, second},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, "first", res.RuleID)
}

func TestResolvePriorityModes(t *testing.T) {
	metaRule := types.MetadataRule{
		ID: "meta", Name: "meta", Enabled: true, Priority: 1, TemplateID: "tpl-camera",
		Conditions: []types.RuleCondition{
			{Field: "image.make", Operator: types.OpExists},
		},
	}
	nameRule := types.FilenameRule{
		ID: "name", Name: "name", Pattern: "IMG_*", Enabled: true, Priority: 10, TemplateID: "tpl-date",
	}

	tests := []struct {
		name     string
		mode     types.RulePriorityMode
		wantRule string
	}{
		{"combined picks highest priority", types.PriorityCombined, "name"},
		{"metadata-first ignores filename priority", types.PriorityMetadataFirst, "meta"},
		{"filename-first", types.PriorityFilenameFirst, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(Config{
				Templates:     testTemplates(),
				MetadataRules: []types.MetadataRule{metaRule},
				FilenameRules: []types.FilenameRule{nameRule},
				PriorityMode:  tt.mode,
			})
			require.NoError(t, err)

			res := r.Resolve(imageFile(), canonMeta())
			assert.Equal(t, tt.wantRule, res.RuleID)
		})
	}
}

func TestResolveDisabledRulesSkipped(t *testing.T) {
	r, err := NewResolver(Config{
		Templates: testTemplates(),
		FilenameRules: []types.FilenameRule{
			{ID: "f1", Name: "off", Pattern: "IMG_*", Enabled: false, TemplateID: "tpl-date"},
		},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, types.TemplateSourceDefault, res.TemplateSource)
}

func TestResolveDanglingTemplateFallsBack(t *testing.T) {
	r, err := NewResolver(Config{
		Templates: testTemplates(),
		FilenameRules: []types.FilenameRule{
			{ID: "f1", Name: "dangling", Pattern: "IMG_*", Enabled: true, TemplateID: "tpl-gone"},
		},
	})
	require.NoError(t, err)

	res := r.Resolve(imageFile(), nil)
	assert.Equal(t, "f1", res.RuleID)
	assert.Equal(t, "tpl-plain", res.Template.ID)
	assert.Equal(t, types.TemplateSourceFallback, res.TemplateSource)
}

func TestTemplateByName(t *testing.T) {
	r, err := NewResolver(Config{Templates: testTemplates()})
	require.NoError(t, err)

	tpl, ok := r.TemplateByName("Camera")
	require.True(t, ok)
	assert.Equal(t, "tpl-camera", tpl.ID)

	_, ok = r.TemplateByName("Nope")
	assert.False(t, ok)
}
