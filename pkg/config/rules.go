package config

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

// Rule CRUD helpers used by the rules subcommands. They mutate the config
// in memory; persisting the result is the caller's job.

// AddFilenameRule validates and appends a filename rule. A missing ID is
// filled with a fresh UUID. Rule names must be unique across both kinds.
func (c *AppConfig) AddFilenameRule(rule types.FilenameRule) (types.FilenameRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if err := validateFilenameRule(rule); err != nil {
		return types.FilenameRule{}, err
	}
	if c.ruleNameTaken(rule.Name, rule.ID) {
		return types.FilenameRule{}, errors.Newf(errors.ErrDuplicateRuleName, "a rule named %q already exists", rule.Name)
	}
	if err := c.checkRuleReferences(rule.TemplateID, rule.FolderStructureID); err != nil {
		return types.FilenameRule{}, err
	}

	c.FilenameRules = append(c.FilenameRules, rule)
	return rule, nil
}

// AddMetadataRule validates and appends a metadata rule.
func (c *AppConfig) AddMetadataRule(rule types.MetadataRule) (types.MetadataRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if err := validateMetadataRule(rule); err != nil {
		return types.MetadataRule{}, err
	}
	if c.ruleNameTaken(rule.Name, rule.ID) {
		return types.MetadataRule{}, errors.Newf(errors.ErrDuplicateRuleName, "a rule named %q already exists", rule.Name)
	}
	if err := c.checkRuleReferences(rule.TemplateID, rule.FolderStructureID); err != nil {
		return types.MetadataRule{}, err
	}

	c.MetadataRules = append(c.MetadataRules, rule)
	return rule, nil
}

// UpdateFilenameRule replaces the rule with the same ID.
func (c *AppConfig) UpdateFilenameRule(rule types.FilenameRule) error {
	if err := validateFilenameRule(rule); err != nil {
		return err
	}
	if c.ruleNameTaken(rule.Name, rule.ID) {
		return errors.Newf(errors.ErrDuplicateRuleName, "a rule named %q already exists", rule.Name)
	}
	if err := c.checkRuleReferences(rule.TemplateID, rule.FolderStructureID); err != nil {
		return err
	}
	for i := range c.FilenameRules {
		if c.FilenameRules[i].ID == rule.ID {
			c.FilenameRules[i] = rule
			return nil
		}
	}
	return errors.Newf(errors.ErrRuleNotFound, "no filename rule with id %q", rule.ID)
}

// UpdateMetadataRule replaces the rule with the same ID.
func (c *AppConfig) UpdateMetadataRule(rule types.MetadataRule) error {
	if err := validateMetadataRule(rule); err != nil {
		return err
	}
	if c.ruleNameTaken(rule.Name, rule.ID) {
		return errors.Newf(errors.ErrDuplicateRuleName, "a rule named %q already exists", rule.Name)
	}
	if err := c.checkRuleReferences(rule.TemplateID, rule.FolderStructureID); err != nil {
		return err
	}
	for i := range c.MetadataRules {
		if c.MetadataRules[i].ID == rule.ID {
			c.MetadataRules[i] = rule
			return nil
		}
	}
	return errors.Newf(errors.ErrRuleNotFound, "no metadata rule with id %q", rule.ID)
}

// DeleteRule removes the rule of either kind matching the given id.
func (c *AppConfig) DeleteRule(id string) error {
	for i := range c.FilenameRules {
		if c.FilenameRules[i].ID == id {
			c.FilenameRules = append(c.FilenameRules[:i], c.FilenameRules[i+1:]...)
			return nil
		}
	}
	for i := range c.MetadataRules {
		if c.MetadataRules[i].ID == id {
			c.MetadataRules = append(c.MetadataRules[:i], c.MetadataRules[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrRuleNotFound, "no rule with id %q", id)
}

// SetRuleEnabled toggles a rule of either kind.
func (c *AppConfig) SetRuleEnabled(id string, enabled bool) error {
	for i := range c.FilenameRules {
		if c.FilenameRules[i].ID == id {
			c.FilenameRules[i].Enabled = enabled
			return nil
		}
	}
	for i := range c.MetadataRules {
		if c.MetadataRules[i].ID == id {
			c.MetadataRules[i].Enabled = enabled
			return nil
		}
	}
	return errors.Newf(errors.ErrRuleNotFound, "no rule with id %q", id)
}

// ruleNameTaken reports whether another rule of either kind already uses
// the name, case-insensitively.
func (c *AppConfig) ruleNameTaken(name, excludeID string) bool {
	for _, r := range c.FilenameRules {
		if r.ID != excludeID && strings.EqualFold(r.Name, name) {
			return true
		}
	}
	for _, r := range c.MetadataRules {
		if r.ID != excludeID && strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

// checkRuleReferences verifies the template a rule points at exists. Folder
// structure references get the same treatment. This is stricter than the
// resolver, which tolerates dangling references at runtime: creating a
// dangling reference on purpose is almost certainly a typo.
func (c *AppConfig) checkRuleReferences(templateID, folderStructureID string) error {
	if templateID == "" {
		return errors.New(errors.ErrValidationFailed, "rule has no template reference")
	}
	if _, ok := c.TemplateByID(templateID); !ok {
		return errors.Newf(errors.ErrTemplateNotFound, "no template with id %q", templateID)
	}
	if folderStructureID != "" {
		found := false
		for _, f := range c.FolderStructures {
			if f.ID == folderStructureID {
				found = true
				break
			}
		}
		if !found {
			return errors.Newf(errors.ErrValidationFailed, "no folder structure with id %q", folderStructureID)
		}
	}
	return nil
}
