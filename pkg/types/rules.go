package types

// RulePriorityMode controls how metadata-pattern and filename-glob rules are
// ordered relative to each other during resolution.
type RulePriorityMode string

const (
	// PriorityCombined sorts all enabled rules of both kinds by priority
	// descending and evaluates them in that single order.
	PriorityCombined RulePriorityMode = "combined"

	// PriorityMetadataFirst evaluates all metadata rules before any
	// filename rule.
	PriorityMetadataFirst RulePriorityMode = "metadata-first"

	// PriorityFilenameFirst evaluates all filename rules before any
	// metadata rule.
	PriorityFilenameFirst RulePriorityMode = "filename-first"
)

// ConditionOperator is the comparison applied by a metadata rule condition
type ConditionOperator string

const (
	OpExists     ConditionOperator = "exists"
	OpEquals     ConditionOperator = "equals"
	OpNotEquals  ConditionOperator = "not-equals"
	OpContains   ConditionOperator = "contains"
	OpStartsWith ConditionOperator = "starts-with"
	OpEndsWith   ConditionOperator = "ends-with"
)

// RuleCondition compares a dotted metadata field path against a value.
// Field paths use the form namespace.field (namespaces: file, image, pdf,
// office), e.g. "image.cameraMake" or "pdf.author".
type RuleCondition struct {
	Field    string            `json:"field" koanf:"field" toml:"field"`
	Operator ConditionOperator `json:"operator" koanf:"operator" toml:"operator"`
	Value    string            `json:"value,omitempty" koanf:"value" toml:"value"`
}

// MetadataRule selects a template (and optionally a folder structure) for
// files whose metadata satisfies every condition.
type MetadataRule struct {
	ID                string          `json:"id" koanf:"id" toml:"id"`
	Name              string          `json:"name" koanf:"name" toml:"name"`
	Conditions        []RuleCondition `json:"conditions" koanf:"conditions" toml:"conditions"`
	TemplateID        string          `json:"templateId" koanf:"template_id" toml:"template_id"`
	FolderStructureID string          `json:"folderStructureId,omitempty" koanf:"folder_structure_id" toml:"folder_structure_id"`
	Priority          int             `json:"priority" koanf:"priority" toml:"priority"`
	Enabled           bool            `json:"enabled" koanf:"enabled" toml:"enabled"`
	CaseSensitive     bool            `json:"caseSensitive,omitempty" koanf:"case_sensitive" toml:"case_sensitive"`
}

// FilenameRule selects a template (and optionally a folder structure) for
// files whose name matches a glob pattern. Supported syntax: *, ?, [set],
// [!set] and {a,b,c} alternatives.
type FilenameRule struct {
	ID                string `json:"id" koanf:"id" toml:"id"`
	Name              string `json:"name" koanf:"name" toml:"name"`
	Pattern           string `json:"pattern" koanf:"pattern" toml:"pattern"`
	TemplateID        string `json:"templateId" koanf:"template_id" toml:"template_id"`
	FolderStructureID string `json:"folderStructureId,omitempty" koanf:"folder_structure_id" toml:"folder_structure_id"`
	Priority          int    `json:"priority" koanf:"priority" toml:"priority"`
	Enabled           bool   `json:"enabled" koanf:"enabled" toml:"enabled"`
	CaseSensitive     bool   `json:"caseSensitive,omitempty" koanf:"case_sensitive" toml:"case_sensitive"`
}
