package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tidyapp/tidy/internal/version"
	"github.com/tidyapp/tidy/pkg/config"
	"github.com/tidyapp/tidy/pkg/logging"
)

var configPath string

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "tidy",
		Short:   "Preview consistent, metadata-driven file renames",
		Long: `tidy scans a folder, reads file metadata (EXIF, PDF, Office documents)
and proposes consistent new names from naming templates and rules.
It never renames anything itself: the output is a reviewable preview.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is "+config.DefaultConfigPath()+")")

	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig loads the effective configuration, honoring --config.
func loadConfig() (*config.AppConfig, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}
