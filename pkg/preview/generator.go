// Package preview turns a batch of scanned files into rename proposals.
// Generation is deterministic and side-effect free: the same files,
// metadata and options always produce the same names, paths, statuses and
// issues. Nothing here writes to disk; the only filesystem access is the
// read-only existence check in the collision pass.
package preview

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidyapp/tidy/pkg/casing"
	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/folder"
	"github.com/tidyapp/tidy/pkg/logging"
	"github.com/tidyapp/tidy/pkg/placeholder"
	"github.com/tidyapp/tidy/pkg/rules"
	"github.com/tidyapp/tidy/pkg/sanitize"
	"github.com/tidyapp/tidy/pkg/template"
	"github.com/tidyapp/tidy/pkg/types"
)

// ProgressFunc is invoked after each processed file. It runs on the
// generator's goroutine and must return quickly.
type ProgressFunc func(done, total int, filePath string)

// Options controls one generator instance.
type Options struct {
	// Template, when set, applies to every file and bypasses rule
	// resolution entirely.
	Template *types.Template

	// FolderPattern enables organize mode with an explicit folder pattern.
	// Rule-supplied folder structures take precedence per file.
	FolderPattern string

	// BaseDirectory is the destination root for organize mode. Empty means
	// each file's own directory.
	BaseDirectory string

	// CaseStyle is applied to the assembled filename stem and to folder
	// segments. StyleNone leaves names untouched.
	CaseStyle        casing.Style
	PreserveAcronyms bool

	// DateFormat overrides the {date} placeholder format.
	DateFormat string

	// Fallback and Fallbacks configure placeholder fallbacks. An entry in
	// Fallbacks wins over the global value; an empty configured entry still
	// counts as configured.
	Fallback  string
	Fallbacks map[string]string

	// StripExistingPatterns removes date stamps and counters from the
	// original stem before template application.
	StripExistingPatterns bool

	// CaseSensitivePaths overrides OS detection for conflict comparison.
	CaseSensitivePaths *bool

	Progress ProgressFunc
}

// Generator produces rename previews. Instances are safe for concurrent
// use: all mutable state lives in the per-call proposal list.
type Generator struct {
	resolver      *rules.Resolver
	fsys          types.FS
	folders       *folder.Resolver
	popts         placeholder.Options
	caseSensitive bool
	opts          Options
	logger        zerolog.Logger
}

// NewGenerator builds a generator. The rule resolver may be nil when an
// explicit template is configured; fsys may be nil to skip the
// filesystem-collision pass.
func NewGenerator(resolver *rules.Resolver, fsys types.FS, opts Options) (*Generator, error) {
	if opts.Template == nil && resolver == nil {
		return nil, errors.New(errors.ErrInvalidInput, "either a template or a rule resolver is required")
	}
	if opts.Template != nil {
		if _, err := template.Parse(opts.Template.Pattern); err != nil {
			return nil, err
		}
	}
	if opts.FolderPattern != "" {
		if err := folder.Validate(opts.FolderPattern); err != nil {
			return nil, err
		}
	}

	popts := placeholder.Options{
		Fallback:            opts.Fallback,
		Fallbacks:           opts.Fallbacks,
		SanitizeForFilename: true,
		DateFormat:          opts.DateFormat,
	}

	caseSensitive := DefaultCaseSensitivity()
	if opts.CaseSensitivePaths != nil {
		caseSensitive = *opts.CaseSensitivePaths
	}

	return &Generator{
		resolver:      resolver,
		fsys:          fsys,
		folders:       folder.NewResolver(popts, opts.CaseStyle),
		popts:         popts,
		caseSensitive: caseSensitive,
		opts:          opts,
		logger:        logging.GetLogger("preview.generator"),
	}, nil
}

// Generate produces a preview for the batch. The loop checks ctx before
// each file; on cancellation no partial preview is returned. Per-file
// problems never abort the batch, only structural failures do.
func (g *Generator) Generate(ctx context.Context, files []types.FileInfo, metadata map[string]*types.UnifiedMetadata) (*types.RenamePreview, error) {
	defer logging.LogOperationStart(g.logger, "generate preview")()

	proposals := make([]types.RenameProposal, 0, len(files))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			g.logger.Debug().Int("processed", i).Msg("generation cancelled")
			return nil, errors.Wrap(err, errors.ErrCancelled, "preview generation aborted")
		}

		p, err := g.propose(file, metadata[file.Path])
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)

		if g.opts.Progress != nil {
			g.opts.Progress(i+1, len(files), file.Path)
		}
	}

	g.markDuplicates(proposals)
	g.markCollisions(proposals)

	return &types.RenamePreview{
		Proposals:    proposals,
		Summary:      types.Summarize(proposals),
		GeneratedAt:  time.Now().UTC(),
		TemplateUsed: g.templateUsed(),
	}, nil
}

func (g *Generator) templateUsed() string {
	if g.opts.Template != nil {
		if g.opts.Template.Name != "" {
			return g.opts.Template.Name
		}
		return g.opts.Template.Pattern
	}
	return g.resolver.DefaultTemplate().Name
}

// propose runs the per-file state machine. The status only ever escalates;
// later checks never return a proposal to ready.
func (g *Generator) propose(file types.FileInfo, meta *types.UnifiedMetadata) (types.RenameProposal, error) {
	workFile := file
	if g.opts.StripExistingPatterns {
		workFile.Name = StripExistingPatterns(file.Name)
	}
	phCtx := types.NewPlaceholderContext(workFile, meta)

	p := types.RenameProposal{
		ID:           uuid.NewString(),
		OriginalPath: file.Path,
		OriginalName: file.FullName,
		Status:       types.StatusReady,
		Metadata:     meta,
	}

	tpl, folderPattern := g.selectTemplate(&p, workFile, meta)
	parsed, err := template.Parse(tpl.Pattern)
	if err != nil {
		return types.RenameProposal{}, err
	}

	name, resolved, missing, fallbacks := g.applyTemplate(parsed, phCtx)
	name = ensureExtension(name, file.Extension)
	name = casing.NormalizeFilename(name, g.opts.CaseStyle, casing.Options{PreserveAcronyms: g.opts.PreserveAcronyms})

	p.MetadataSources = sourceList(resolved)

	for _, m := range missing {
		p.Issues = append(p.Issues, types.RenameIssue{
			Code:    types.IssueMissingData,
			Message: fmt.Sprintf("no value available for {%s}", m),
			Field:   m,
		})
	}
	if len(missing) > 0 {
		p.Status = p.Status.Escalate(types.StatusMissingData)
	}
	for _, fb := range fallbacks {
		p.Issues = append(p.Issues, types.RenameIssue{
			Code:    types.IssueFallbackUsed,
			Message: fmt.Sprintf("fallback value used for {%s}", fb),
			Field:   fb,
		})
	}

	destDir := path.Dir(strings.ReplaceAll(file.Path, "\\", "/"))
	if destDir == "." {
		destDir = ""
	}
	if folderPattern != "" {
		destDir = g.resolveFolder(&p, folderPattern, phCtx, destDir)
	}

	if p.Status == types.StatusReady && name == file.FullName && !p.IsFolderMove {
		p.Status = p.Status.Escalate(types.StatusNoChange)
	}

	res := sanitize.ForTarget(name)
	if res.WasModified {
		name = res.Sanitized
		for _, ch := range res.Changes {
			p.Issues = append(p.Issues, types.RenameIssue{
				Code:    types.IssueSanitized,
				Message: ch.Message,
				Field:   string(ch.Type),
			})
		}
	}

	if !sanitize.IsValidFilename(name) {
		p.Status = p.Status.Escalate(types.StatusInvalidName)
		p.Issues = append(p.Issues, types.RenameIssue{
			Code:    types.IssueInvalidName,
			Message: "proposed filename is not valid on the target filesystem",
		})
	}

	p.ProposedName = name
	if destDir == "" {
		p.ProposedPath = name
	} else {
		p.ProposedPath = strings.TrimRight(destDir, "/") + "/" + name
	}

	return p, nil
}

// selectTemplate picks the template and folder pattern for one file,
// recording the applied rule and template source on the proposal.
func (g *Generator) selectTemplate(p *types.RenameProposal, file types.FileInfo, meta *types.UnifiedMetadata) (types.Template, string) {
	if g.opts.Template != nil {
		return *g.opts.Template, g.opts.FolderPattern
	}

	res := g.resolver.Resolve(file, meta)
	p.AppliedRule = res.RuleName
	p.TemplateSource = res.TemplateSource

	folderPattern := g.opts.FolderPattern
	if res.FolderStructure != nil && res.FolderStructure.Enabled {
		folderPattern = res.FolderStructure.Pattern
	}
	return res.Template, folderPattern
}

// applyTemplate assembles the name, recording every resolved placeholder,
// the ones that stayed empty without a fallback, and the ones a fallback
// filled.
func (g *Generator) applyTemplate(parsed *template.Parsed, phCtx types.PlaceholderContext) (string, []types.ResolvedPlaceholder, []string, []string) {
	var sb strings.Builder
	var resolved []types.ResolvedPlaceholder
	var missing, fallbacks []string

	for _, tok := range parsed.Tokens {
		if tok.Kind == template.TokenLiteral {
			sb.WriteString(tok.Value)
			continue
		}
		rp := placeholder.Resolve(tok.Value, phCtx, g.popts)
		resolved = append(resolved, rp)
		base := template.BaseName(tok.Value)
		switch {
		case rp.Source == types.SourceFallback:
			fallbacks = append(fallbacks, base)
		case rp.Value == "":
			missing = append(missing, base)
		}
		sb.WriteString(rp.Value)
	}

	return sb.String(), resolved, missing, fallbacks
}

// resolveFolder evaluates the folder pattern with strict semantics. A
// missing-metadata failure is soft at batch level: the proposal escalates
// and keeps its original directory.
func (g *Generator) resolveFolder(p *types.RenameProposal, pattern string, phCtx types.PlaceholderContext, sourceDir string) string {
	rel, err := g.folders.Resolve(pattern, phCtx)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrMissingMetadata) {
			p.Status = p.Status.Escalate(types.StatusMissingData)
			for _, f := range missingFields(err) {
				p.Issues = append(p.Issues, types.RenameIssue{
					Code:    types.IssueMissingData,
					Message: fmt.Sprintf("folder pattern requires {%s}", f),
					Field:   f,
				})
			}
			return sourceDir
		}
		g.logger.Warn().Err(err).Str("pattern", pattern).Msg("folder resolution failed")
		return sourceDir
	}

	base := g.opts.BaseDirectory
	if base == "" {
		base = sourceDir
	}
	dest := rel
	if base != "" {
		dest = strings.TrimRight(strings.ReplaceAll(base, "\\", "/"), "/") + "/" + rel
	}
	if dest != sourceDir {
		p.IsFolderMove = true
		p.DestinationFolder = rel
	}
	return dest
}

func missingFields(err error) []string {
	if fields, ok := errors.GetErrorDetails(err)["missingFields"].([]string); ok {
		return fields
	}
	return nil
}

// ensureExtension appends the file's extension when the pattern carries no
// dot at all, and corrects a mismatched trailing extension otherwise.
func ensureExtension(name, ext string) string {
	if ext == "" || name == "" {
		return name
	}
	if !strings.Contains(name, ".") {
		return name + "." + ext
	}
	if strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		return name
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx+1] + ext
	}
	return name
}

// sourceList reduces resolved placeholders to the distinct non-literal
// sources that contributed, in first-use order.
func sourceList(resolved []types.ResolvedPlaceholder) []string {
	var out []string
	seen := make(map[types.Source]bool)
	for _, rp := range resolved {
		if rp.Source == types.SourceLiteral || seen[rp.Source] {
			continue
		}
		seen[rp.Source] = true
		out = append(out, string(rp.Source))
	}
	return out
}
