package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

func crudConfig(t *testing.T) *AppConfig {
	t.Helper()
	cfg, err := Defaults()
	require.NoError(t, err)
	return cfg
}

func validFilenameRule() types.FilenameRule {
	return types.FilenameRule{
		Name:       "screenshots",
		Pattern:    "Screenshot*.png",
		TemplateID: "date-prefix",
		Priority:   5,
		Enabled:    true,
	}
}

func validMetadataRule() types.MetadataRule {
	return types.MetadataRule{
		Name:       "canon photos",
		TemplateID: "camera-date",
		Priority:   10,
		Enabled:    true,
		Conditions: []types.RuleCondition{
			{Field: "image.make", Operator: types.OpEquals, Value: "Canon"},
		},
	}
}

func TestAddFilenameRule(t *testing.T) {
	cfg := crudConfig(t)

	added, err := cfg.AddFilenameRule(validFilenameRule())
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Len(t, cfg.FilenameRules, 1)
}

func TestAddRuleDuplicateName(t *testing.T) {
	cfg := crudConfig(t)

	_, err := cfg.AddFilenameRule(validFilenameRule())
	require.NoError(t, err)

	dup := validMetadataRule()
	dup.Name = "SCREENSHOTS"
	_, err = cfg.AddMetadataRule(dup)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRuleName))
}

func TestAddRuleUnknownTemplate(t *testing.T) {
	cfg := crudConfig(t)

	rule := validFilenameRule()
	rule.TemplateID = "nope"
	_, err := cfg.AddFilenameRule(rule)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestAddRuleBadGlob(t *testing.T) {
	cfg := crudConfig(t)

	rule := validFilenameRule()
	rule.Pattern = "{a,"
	_, err := cfg.AddFilenameRule(rule)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidationFailed))
}

func TestAddMetadataRuleNoConditions(t *testing.T) {
	cfg := crudConfig(t)

	rule := validMetadataRule()
	rule.Conditions = nil
	_, err := cfg.AddMetadataRule(rule)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidationFailed))
}

func TestUpdateFilenameRule(t *testing.T) {
	cfg := crudConfig(t)

	added, err := cfg.AddFilenameRule(validFilenameRule())
	require.NoError(t, err)

	added.Pattern = "IMG_*.jpg"
	require.NoError(t, cfg.UpdateFilenameRule(added))
	assert.Equal(t, "IMG_*.jpg", cfg.FilenameRules[0].Pattern)

	missing := validFilenameRule()
	missing.ID = "ghost"
	missing.Name = "something else"
	err = cfg.UpdateFilenameRule(missing)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleNotFound))
}

func TestDeleteRule(t *testing.T) {
	cfg := crudConfig(t)

	f, err := cfg.AddFilenameRule(validFilenameRule())
	require.NoError(t, err)
	m, err := cfg.AddMetadataRule(validMetadataRule())
	require.NoError(t, err)

	require.NoError(t, cfg.DeleteRule(f.ID))
	require.NoError(t, cfg.DeleteRule(m.ID))
	assert.Empty(t, cfg.FilenameRules)
	assert.Empty(t, cfg.MetadataRules)

	err = cfg.DeleteRule("ghost")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleNotFound))
}

func TestSetRuleEnabled(t *testing.T) {
	cfg := crudConfig(t)

	added, err := cfg.AddFilenameRule(validFilenameRule())
	require.NoError(t, err)

	require.NoError(t, cfg.SetRuleEnabled(added.ID, false))
	assert.False(t, cfg.FilenameRules[0].Enabled)

	err = cfg.SetRuleEnabled("ghost", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleNotFound))
}
