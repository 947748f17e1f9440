package types

import "time"

// Source records which upstream system supplied a placeholder's value.
// It is provenance only and never drives downstream logic, except for
// fallback-usage tracking.
type Source string

const (
	SourceEXIF       Source = "exif"
	SourceDocument   Source = "document"
	SourceFilesystem Source = "filesystem"
	SourceFallback   Source = "fallback"
	SourceLiteral    Source = "literal"
)

// ResolvedPlaceholder is the result of resolving one placeholder for one file
type ResolvedPlaceholder struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// TemplateSource records how the template applied to a file was chosen
type TemplateSource string

const (
	// TemplateSourceRule means a matching rule supplied the template
	TemplateSourceRule TemplateSource = "rule"

	// TemplateSourceDefault means no rule matched and the default applied
	TemplateSourceDefault TemplateSource = "default"

	// TemplateSourceFallback means the winning rule referenced a template
	// that does not exist and the default was substituted
	TemplateSourceFallback TemplateSource = "fallback"
)

// Issue codes attached to proposals. These are soft, per-file problems;
// they never abort the batch.
const (
	IssueMissingData   = "MISSING_DATA"
	IssueFallbackUsed  = "FALLBACK_USED"
	IssueInvalidName   = "INVALID_NAME"
	IssueDuplicateName = "DUPLICATE_NAME"
	IssueFileExists    = "FILE_EXISTS"
	IssueSanitized     = "SANITIZED"
)

// RenameIssue describes a problem or notable adjustment on one proposal
type RenameIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RenameProposal is the per-file outcome of preview generation. IDs are
// fresh per generation and not stable across runs.
type RenameProposal struct {
	ID                string          `json:"id"`
	OriginalPath      string          `json:"originalPath"`
	OriginalName      string          `json:"originalName"`
	ProposedName      string          `json:"proposedName"`
	ProposedPath      string          `json:"proposedPath"`
	Status            Status          `json:"status"`
	Issues            []RenameIssue   `json:"issues"`
	AppliedRule       string          `json:"appliedRule,omitempty"`
	TemplateSource    TemplateSource  `json:"templateSource,omitempty"`
	MetadataSources   []string        `json:"metadataSources,omitempty"`
	IsFolderMove      bool            `json:"isFolderMove"`
	DestinationFolder string          `json:"destinationFolder,omitempty"`
	Metadata          *UnifiedMetadata `json:"metadata,omitempty"`
}

// PreviewSummary aggregates proposal counts per status. It is always computed
// from the proposal list, never stored independently.
type PreviewSummary struct {
	Total       int `json:"total"`
	Ready       int `json:"ready"`
	Conflicts   int `json:"conflicts"`
	MissingData int `json:"missingData"`
	NoChange    int `json:"noChange"`
	InvalidName int `json:"invalidName"`
}

// Summarize folds a proposal list into its summary
func Summarize(proposals []RenameProposal) PreviewSummary {
	s := PreviewSummary{Total: len(proposals)}
	for _, p := range proposals {
		switch p.Status {
		case StatusReady:
			s.Ready++
		case StatusConflict:
			s.Conflicts++
		case StatusMissingData:
			s.MissingData++
		case StatusNoChange:
			s.NoChange++
		case StatusInvalidName:
			s.InvalidName++
		}
	}
	return s
}

// RenamePreview is the complete result of one preview generation. It is
// generated fresh per call and JSON-serializable for presentation layers.
type RenamePreview struct {
	Proposals    []RenameProposal `json:"proposals"`
	Summary      PreviewSummary   `json:"summary"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	TemplateUsed string           `json:"templateUsed"`
}
