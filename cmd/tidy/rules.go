package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tidyapp/tidy/pkg/config"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect template selection rules",
	}
	cmd.AddCommand(newRulesListCmd())
	return cmd
}

func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"Name", "Kind", "Matches", "Template", "Priority", "Enabled"}}
			for _, r := range cfg.MetadataRules {
				rows = append(rows, []string{
					r.Name, "metadata", fmt.Sprintf("%d conditions", len(r.Conditions)),
					templateLabel(cfg, r.TemplateID), strconv.Itoa(r.Priority), enabledLabel(r.Enabled),
				})
			}
			for _, r := range cfg.FilenameRules {
				rows = append(rows, []string{
					r.Name, "filename", r.Pattern,
					templateLabel(cfg, r.TemplateID), strconv.Itoa(r.Priority), enabledLabel(r.Enabled),
				})
			}

			return pterm.DefaultTable.
				WithWriter(cmd.OutOrStdout()).
				WithHasHeader().
				WithData(rows).
				Render()
		},
	}
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}

// templateLabel shows the referenced template's name when it resolves,
// otherwise the raw reference.
func templateLabel(cfg *config.AppConfig, id string) string {
	if t, ok := cfg.TemplateByID(id); ok {
		return t.Name
	}
	if t, ok := cfg.TemplateByName(id); ok {
		return t.Name
	}
	return id
}
