// Package output renders a RenamePreview for the terminal: a styled table,
// plain line-oriented text, or the JSON preview document.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tidyapp/tidy/pkg/types"
	"github.com/tidyapp/tidy/pkg/ui"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	subduedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	arrowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func statusStyle(s types.Status) lipgloss.Style {
	switch s {
	case types.StatusReady:
		return readyStyle
	case types.StatusMissingData:
		return warnStyle
	case types.StatusConflict, types.StatusInvalidName:
		return errorStyle
	default:
		return subduedStyle
	}
}

// Renderer writes a preview in one concrete format. FormatAuto must be
// resolved by the caller before constructing a renderer.
type Renderer struct {
	w      io.Writer
	format ui.Format
}

// NewRenderer creates a renderer for the given writer and format.
func NewRenderer(w io.Writer, format ui.Format) *Renderer {
	return &Renderer{w: w, format: format}
}

// Render writes the preview in the renderer's format.
func (r *Renderer) Render(preview *types.RenamePreview) error {
	switch r.format {
	case ui.FormatJSON:
		return r.renderJSON(preview)
	case ui.FormatTable:
		return r.renderTable(preview)
	default:
		return r.renderPlain(preview)
	}
}

func (r *Renderer) renderJSON(preview *types.RenamePreview) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(preview)
}

func (r *Renderer) renderPlain(preview *types.RenamePreview) error {
	for _, p := range preview.Proposals {
		target := p.ProposedName
		if p.IsFolderMove {
			target = p.DestinationFolder + "/" + p.ProposedName
		}
		if _, err := fmt.Fprintf(r.w, "%s\t%s\t%s\n", p.OriginalName, target, p.Status); err != nil {
			return err
		}
		for _, issue := range p.Issues {
			if _, err := fmt.Fprintf(r.w, "\t%s: %s\n", issue.Code, issue.Message); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(r.w, summaryLine(preview.Summary))
	return err
}

func (r *Renderer) renderTable(preview *types.RenamePreview) error {
	headers := []string{"Original", "Proposed", "Status", "Notes"}

	rows := make([][]string, 0, len(preview.Proposals))
	for _, p := range preview.Proposals {
		target := p.ProposedName
		if p.IsFolderMove {
			target = p.DestinationFolder + "/" + p.ProposedName
		}
		rows = append(rows, []string{p.OriginalName, target, string(p.Status), issueSummary(p.Issues)})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for ri, row := range rows {
		p := preview.Proposals[ri]
		style := statusStyle(p.Status)
		b.WriteString(pad(row[0], widths[0]))
		b.WriteString(arrowStyle.Render("  "))
		b.WriteString(style.Render(pad(row[1], widths[1])))
		b.WriteString("  ")
		b.WriteString(style.Render(pad(row[2], widths[2])))
		b.WriteString("  ")
		b.WriteString(subduedStyle.Render(row[3]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(summaryLine(preview.Summary))
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func issueSummary(issues []types.RenameIssue) string {
	if len(issues) == 0 {
		return ""
	}
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return strings.Join(codes, ", ")
}

func summaryLine(s types.PreviewSummary) string {
	parts := []string{fmt.Sprintf("%d files", s.Total), fmt.Sprintf("%d ready", s.Ready)}
	if s.Conflicts > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicts", s.Conflicts))
	}
	if s.MissingData > 0 {
		parts = append(parts, fmt.Sprintf("%d missing data", s.MissingData))
	}
	if s.NoChange > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", s.NoChange))
	}
	if s.InvalidName > 0 {
		parts = append(parts, fmt.Sprintf("%d invalid", s.InvalidName))
	}
	return strings.Join(parts, ", ")
}
