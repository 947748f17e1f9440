// Package config loads and validates the application configuration:
// templates, rules, folder structures and user preferences. Layering is
// embedded defaults, then the user's config file, then TIDY_ environment
// variables, later layers overriding earlier ones.
package config

import (
	"github.com/tidyapp/tidy/pkg/types"
)

// Preferences holds user-tunable behavior that is not a template or rule.
type Preferences struct {
	DefaultOutputFormat   string                 `json:"defaultOutputFormat" koanf:"default_output_format" toml:"default_output_format"`
	Recursive             bool                   `json:"recursive" koanf:"recursive" toml:"recursive"`
	StripExistingPatterns bool                   `json:"stripExistingPatterns" koanf:"strip_existing_patterns" toml:"strip_existing_patterns"`
	CaseNormalization     string                 `json:"caseNormalization" koanf:"case_normalization" toml:"case_normalization"`
	PreserveAcronyms      bool                   `json:"preserveAcronyms" koanf:"preserve_acronyms" toml:"preserve_acronyms"`
	RulePriorityMode      types.RulePriorityMode `json:"rulePriorityMode" koanf:"rule_priority_mode" toml:"rule_priority_mode"`
	DateFormat            string                 `json:"dateFormat" koanf:"date_format" toml:"date_format"`
	Fallback              string                 `json:"fallback" koanf:"fallback" toml:"fallback"`
	Fallbacks             map[string]string      `json:"fallbacks,omitempty" koanf:"fallbacks" toml:"fallbacks,omitempty"`
}

// AppConfig is the complete loaded configuration.
type AppConfig struct {
	Version          int                     `json:"version" koanf:"version" toml:"version"`
	Templates        []types.Template        `json:"templates" koanf:"templates" toml:"templates"`
	FolderStructures []types.FolderStructure `json:"folderStructures" koanf:"folder_structures" toml:"folder_structures"`
	MetadataRules    []types.MetadataRule    `json:"metadataRules" koanf:"metadata_rules" toml:"metadata_rules,omitempty"`
	FilenameRules    []types.FilenameRule    `json:"filenameRules" koanf:"filename_rules" toml:"filename_rules,omitempty"`
	Preferences      Preferences             `json:"preferences" koanf:"preferences" toml:"preferences"`
}

// DefaultTemplate returns the template marked as default, or the first one.
func (c *AppConfig) DefaultTemplate() (types.Template, bool) {
	for _, t := range c.Templates {
		if t.IsDefault {
			return t, true
		}
	}
	if len(c.Templates) > 0 {
		return c.Templates[0], true
	}
	return types.Template{}, false
}

// TemplateByName finds a template by display name.
func (c *AppConfig) TemplateByName(name string) (types.Template, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return types.Template{}, false
}

// TemplateByID finds a template by id.
func (c *AppConfig) TemplateByID(id string) (types.Template, bool) {
	for _, t := range c.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return types.Template{}, false
}

// FolderStructureByName finds a folder structure by display name.
func (c *AppConfig) FolderStructureByName(name string) (types.FolderStructure, bool) {
	for _, f := range c.FolderStructures {
		if f.Name == name {
			return f, true
		}
	}
	return types.FolderStructure{}, false
}
