package config

import (
	"strings"

	"github.com/tidyapp/tidy/pkg/casing"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/folder"
	"github.com/tidyapp/tidy/pkg/rules"
	"github.com/tidyapp/tidy/pkg/template"
	"github.com/tidyapp/tidy/pkg/types"
)

const maxPatternLength = 1000

// Validate checks a loaded configuration for structural problems: empty
// names, unparseable patterns, bad glob syntax, unknown enum values.
// Dangling template references are deliberately not an error here; the
// rule resolver degrades them to the default template at runtime.
func Validate(cfg *AppConfig) error {
	if cfg.Version < 1 {
		return errors.New(errors.ErrConfigValid, "config version must be >= 1")
	}

	for _, t := range cfg.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return errors.Newf(errors.ErrConfigValid, "template %q has an empty name", t.ID)
		}
		if strings.TrimSpace(t.Pattern) == "" {
			return errors.Newf(errors.ErrConfigValid, "template %q has an empty pattern", t.Name)
		}
		if len(t.Pattern) > maxPatternLength {
			return errors.Newf(errors.ErrConfigValid, "template %q pattern exceeds %d characters", t.Name, maxPatternLength)
		}
		if _, err := template.Parse(t.Pattern); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "template %q has an invalid pattern", t.Name)
		}
	}

	for _, f := range cfg.FolderStructures {
		if strings.TrimSpace(f.Name) == "" {
			return errors.Newf(errors.ErrConfigValid, "folder structure %q has an empty name", f.ID)
		}
		if err := folder.Validate(f.Pattern); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "folder structure %q has an invalid pattern", f.Name)
		}
	}

	for _, r := range cfg.FilenameRules {
		if err := validateFilenameRule(r); err != nil {
			return err
		}
	}
	for _, r := range cfg.MetadataRules {
		if err := validateMetadataRule(r); err != nil {
			return err
		}
	}

	switch cfg.Preferences.RulePriorityMode {
	case "", types.PriorityCombined, types.PriorityMetadataFirst, types.PriorityFilenameFirst:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown rule priority mode %q", cfg.Preferences.RulePriorityMode)
	}

	if s := cfg.Preferences.CaseNormalization; s != "" {
		if casing.ParseStyle(s) == casing.StyleNone && strings.ToLower(strings.TrimSpace(s)) != "none" {
			return errors.Newf(errors.ErrConfigValid, "unknown case normalization style %q", s)
		}
	}

	return nil
}

func validateFilenameRule(r types.FilenameRule) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Newf(errors.ErrValidationFailed, "filename rule %q has an empty name", r.ID)
	}
	if r.Priority < 0 {
		return errors.Newf(errors.ErrValidationFailed, "filename rule %q has a negative priority", r.Name)
	}
	if err := rules.ValidateGlob(r.Pattern); err != nil {
		return errors.Wrapf(err, errors.ErrValidationFailed, "filename rule %q has an invalid pattern", r.Name)
	}
	return nil
}

func validateMetadataRule(r types.MetadataRule) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Newf(errors.ErrValidationFailed, "metadata rule %q has an empty name", r.ID)
	}
	if r.Priority < 0 {
		return errors.Newf(errors.ErrValidationFailed, "metadata rule %q has a negative priority", r.Name)
	}
	if len(r.Conditions) == 0 {
		return errors.Newf(errors.ErrValidationFailed, "metadata rule %q has no conditions", r.Name)
	}
	for _, c := range r.Conditions {
		switch c.Operator {
		case types.OpExists, types.OpEquals, types.OpNotEquals, types.OpContains, types.OpStartsWith, types.OpEndsWith:
		default:
			return errors.Newf(errors.ErrValidationFailed, "metadata rule %q uses unknown operator %q", r.Name, c.Operator)
		}
		if c.Field == "" {
			return errors.Newf(errors.ErrValidationFailed, "metadata rule %q has a condition with no field", r.Name)
		}
		if c.Operator != types.OpExists && c.Value == "" {
			return errors.Newf(errors.ErrValidationFailed, "metadata rule %q compares %s against an empty value", r.Name, c.Field)
		}
	}
	return nil
}
