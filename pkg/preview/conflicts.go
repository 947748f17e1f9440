package preview

import (
	"runtime"
	"strings"

	"github.com/tidyapp/tidy/pkg/types"
)

// DefaultCaseSensitivity reports whether path comparison should be
// case-sensitive on this OS. Windows and macOS filesystems are treated as
// case-insensitive; everything else as case-sensitive.
func DefaultCaseSensitivity() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	default:
		return true
	}
}

// duplicateKey normalizes a proposed path for the in-batch duplicate pass.
// This pass is always case-insensitive: two proposals differing only in
// case are a conflict on the filesystems that matter.
func duplicateKey(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
}

// markDuplicates escalates every still-ready member of a group of
// proposals sharing one proposed path. Proposals already in a stricter
// state are left alone.
func (g *Generator) markDuplicates(proposals []types.RenameProposal) {
	groups := make(map[string][]int, len(proposals))
	for i, p := range proposals {
		key := duplicateKey(p.ProposedPath)
		groups[key] = append(groups[key], i)
	}

	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs {
			if proposals[i].Status != types.StatusReady {
				continue
			}
			proposals[i].Status = proposals[i].Status.Escalate(types.StatusConflict)
			proposals[i].Issues = append(proposals[i].Issues, types.RenameIssue{
				Code:    types.IssueDuplicateName,
				Message: "another file in this batch resolves to the same name",
			})
		}
	}
}

// markCollisions escalates still-ready proposals whose proposed path
// already exists on disk and is not being vacated by another proposal in
// the same batch.
func (g *Generator) markCollisions(proposals []types.RenameProposal) {
	if g.fsys == nil {
		return
	}

	norm := func(p string) string {
		p = strings.ReplaceAll(p, "\\", "/")
		if !g.caseSensitive {
			p = strings.ToLower(p)
		}
		return p
	}

	vacated := make(map[string]bool, len(proposals))
	for _, p := range proposals {
		if norm(p.ProposedPath) != norm(p.OriginalPath) {
			vacated[norm(p.OriginalPath)] = true
		}
	}

	for i := range proposals {
		p := &proposals[i]
		if p.Status != types.StatusReady {
			continue
		}
		target := norm(p.ProposedPath)
		if target == norm(p.OriginalPath) {
			continue
		}
		if vacated[target] {
			continue
		}
		if _, err := g.fsys.Stat(p.ProposedPath); err != nil {
			continue
		}
		p.Status = p.Status.Escalate(types.StatusConflict)
		p.Issues = append(p.Issues, types.RenameIssue{
			Code:    types.IssueFileExists,
			Message: "a file already exists at the proposed path",
		})
	}
}
