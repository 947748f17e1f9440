package rules

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/logging"
	"github.com/tidyapp/tidy/pkg/types"
)

// Resolution is the outcome of rule resolution for one file
type Resolution struct {
	// Template that applies to the file
	Template types.Template

	// FolderStructure selected by the winning rule, nil when none
	FolderStructure *types.FolderStructure

	// RuleID and RuleName identify the winning rule, empty when none matched
	RuleID   string
	RuleName string

	// TemplateSource records how the template was chosen: rule, default,
	// or fallback (winning rule referenced a missing template)
	TemplateSource types.TemplateSource
}

// Resolver selects the applicable template and folder structure per file
type Resolver struct {
	templates       map[string]types.Template
	folders         map[string]types.FolderStructure
	defaultTemplate types.Template
	order           []candidate
	logger          zerolog.Logger
}

// candidate is one enabled rule in evaluation order
type candidate struct {
	kind     ruleKind
	priority int
	meta     types.MetadataRule
	filename types.FilenameRule
}

type ruleKind int

const (
	kindMetadata ruleKind = iota
	kindFilename
)

// Config assembles everything the resolver needs. DefaultTemplate falls
// back to the template marked IsDefault, then the first template, then a
// bare "{name}" pattern.
type Config struct {
	Templates        []types.Template
	FolderStructures []types.FolderStructure
	MetadataRules    []types.MetadataRule
	FilenameRules    []types.FilenameRule
	PriorityMode     types.RulePriorityMode
}

// NewResolver builds a resolver, validating every enabled filename rule's
// glob pattern eagerly. A malformed pattern is an INVALID_PATTERN error,
// not a silent no-match.
func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{
		templates: make(map[string]types.Template, len(cfg.Templates)),
		folders:   make(map[string]types.FolderStructure, len(cfg.FolderStructures)),
		logger:    logging.GetLogger("rules.resolver"),
	}

	for _, t := range cfg.Templates {
		r.templates[t.ID] = t
		if t.IsDefault && r.defaultTemplate.ID == "" {
			r.defaultTemplate = t
		}
	}
	if r.defaultTemplate.ID == "" && len(cfg.Templates) > 0 {
		r.defaultTemplate = cfg.Templates[0]
	}
	if r.defaultTemplate.ID == "" {
		r.defaultTemplate = types.Template{ID: "builtin", Name: "Original name", Pattern: "{name}", IsDefault: true}
	}

	for _, f := range cfg.FolderStructures {
		r.folders[f.ID] = f
	}

	for _, rule := range cfg.FilenameRules {
		if !rule.Enabled {
			continue
		}
		if err := ValidateGlob(rule.Pattern); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern,
				"filename rule %q has a malformed pattern", rule.Name)
		}
	}

	r.order = buildOrder(cfg)

	r.logger.Debug().
		Int("candidates", len(r.order)).
		Str("mode", string(modeOrDefault(cfg.PriorityMode))).
		Msg("rule resolver ready")

	return r, nil
}

func modeOrDefault(mode types.RulePriorityMode) types.RulePriorityMode {
	switch mode {
	case types.PriorityCombined, types.PriorityMetadataFirst, types.PriorityFilenameFirst:
		return mode
	default:
		return types.PriorityCombined
	}
}

// buildOrder produces the evaluation order for the configured priority
// mode. Sorting is stable so rules with equal priority keep their original
// array order.
func buildOrder(cfg Config) []candidate {
	var metaCands, nameCands []candidate
	for _, m := range cfg.MetadataRules {
		if m.Enabled {
			metaCands = append(metaCands, candidate{kind: kindMetadata, priority: m.Priority, meta: m})
		}
	}
	for _, f := range cfg.FilenameRules {
		if f.Enabled {
			nameCands = append(nameCands, candidate{kind: kindFilename, priority: f.Priority, filename: f})
		}
	}

	byPriority := func(cands []candidate) []candidate {
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].priority > cands[j].priority
		})
		return cands
	}

	switch modeOrDefault(cfg.PriorityMode) {
	case types.PriorityMetadataFirst:
		return append(byPriority(metaCands), byPriority(nameCands)...)
	case types.PriorityFilenameFirst:
		return append(byPriority(nameCands), byPriority(metaCands)...)
	default:
		return byPriority(append(metaCands, nameCands...))
	}
}

// DefaultTemplate returns the resolver's default template
func (r *Resolver) DefaultTemplate() types.Template {
	return r.defaultTemplate
}

// TemplateByName looks a template up by its display name
func (r *Resolver) TemplateByName(name string) (types.Template, bool) {
	for _, t := range r.templates {
		if t.Name == name {
			return t, true
		}
	}
	return types.Template{}, false
}

// Resolve picks the template and folder structure for one file. The first
// matching enabled rule in evaluation order wins; a dangling template
// reference degrades to the default template with TemplateSource fallback.
func (r *Resolver) Resolve(file types.FileInfo, meta *types.UnifiedMetadata) Resolution {
	ctx := types.NewPlaceholderContext(file, meta)

	for _, cand := range r.order {
		var matched bool
		var ruleID, ruleName, templateID, folderID string

		switch cand.kind {
		case kindMetadata:
			matched = r.matchMetadataRule(cand.meta, ctx)
			ruleID, ruleName = cand.meta.ID, cand.meta.Name
			templateID, folderID = cand.meta.TemplateID, cand.meta.FolderStructureID
		case kindFilename:
			matched = r.matchFilenameRule(cand.filename, file)
			ruleID, ruleName = cand.filename.ID, cand.filename.Name
			templateID, folderID = cand.filename.TemplateID, cand.filename.FolderStructureID
		}

		if !matched {
			continue
		}

		res := Resolution{RuleID: ruleID, RuleName: ruleName}
		if tpl, ok := r.templates[templateID]; ok {
			res.Template = tpl
			res.TemplateSource = types.TemplateSourceRule
		} else {
			r.logger.Warn().
				Str("rule", ruleName).
				Str("templateId", templateID).
				Msg("rule references missing template, using default")
			res.Template = r.defaultTemplate
			res.TemplateSource = types.TemplateSourceFallback
		}
		if folder, ok := r.folders[folderID]; ok {
			res.FolderStructure = &folder
		}
		return res
	}

	return Resolution{
		Template:       r.defaultTemplate,
		TemplateSource: types.TemplateSourceDefault,
	}
}

// matchMetadataRule requires every condition to hold
func (r *Resolver) matchMetadataRule(rule types.MetadataRule, ctx types.PlaceholderContext) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, cond := range rule.Conditions {
		if !evalCondition(cond, ctx, rule.CaseSensitive) {
			return false
		}
	}
	return true
}

func evalCondition(cond types.RuleCondition, ctx types.PlaceholderContext, caseSensitive bool) bool {
	fv := ResolveField(cond.Field, ctx)

	if cond.Operator == types.OpExists {
		return fv.Found
	}
	if !fv.Found {
		return false
	}

	have := fv.StringValue()
	want := cond.Value
	if !caseSensitive {
		have = strings.ToLower(have)
		want = strings.ToLower(want)
	}

	switch cond.Operator {
	case types.OpEquals:
		return have == want
	case types.OpNotEquals:
		return have != want
	case types.OpContains:
		return strings.Contains(have, want)
	case types.OpStartsWith:
		return strings.HasPrefix(have, want)
	case types.OpEndsWith:
		return strings.HasSuffix(have, want)
	default:
		return false
	}
}

// matchFilenameRule matches the rule's glob against the filename. Patterns
// were validated at construction, so a match error here means the rule was
// mutated after the fact; it is treated as no-match and logged.
func (r *Resolver) matchFilenameRule(rule types.FilenameRule, file types.FileInfo) bool {
	matched, err := MatchGlob(rule.Pattern, file.FullName, rule.CaseSensitive)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("rule", rule.Name).
			Str("pattern", rule.Pattern).
			Msg("glob match failed")
		return false
	}
	return matched
}
