package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect naming templates",
	}
	cmd.AddCommand(newTemplatesListCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured naming templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"Name", "Pattern", "Default"}}
			for _, t := range cfg.Templates {
				def := ""
				if t.IsDefault {
					def = "yes"
				}
				rows = append(rows, []string{t.Name, t.Pattern, def})
			}

			return pterm.DefaultTable.
				WithWriter(cmd.OutOrStdout()).
				WithHasHeader().
				WithData(rows).
				Render()
		},
	}
}
