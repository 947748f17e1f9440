package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tidyapp/tidy/pkg/casing"
	"github.com/tidyapp/tidy/pkg/extract"
	"github.com/tidyapp/tidy/pkg/filesystem"
	"github.com/tidyapp/tidy/pkg/preview"
	"github.com/tidyapp/tidy/pkg/rules"
	"github.com/tidyapp/tidy/pkg/scanner"
	"github.com/tidyapp/tidy/pkg/ui"
	"github.com/tidyapp/tidy/pkg/ui/output"
)

func newPreviewCmd() *cobra.Command {
	var (
		templateName  string
		folderName    string
		baseDir       string
		format        string
		caseStyle     string
		fallback      string
		pathCase      string
		recursive     bool
		includeHidden bool
		stripPatterns bool
		extensions    []string
	)

	cmd := &cobra.Command{
		Use:   "preview [folder]",
		Short: "Scan a folder and preview the renames tidy would propose",
		Long: `Scan a folder, extract file metadata and print the rename preview.

Nothing is renamed. Exit codes: 0 all clean, 1 error, 2 conflicts
present, 3 some files have missing data or invalid names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) == 1 {
				folder = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := preview.Options{
				BaseDirectory:         baseDir,
				PreserveAcronyms:      cfg.Preferences.PreserveAcronyms,
				DateFormat:            cfg.Preferences.DateFormat,
				Fallback:              cfg.Preferences.Fallback,
				Fallbacks:             cfg.Preferences.Fallbacks,
				StripExistingPatterns: cfg.Preferences.StripExistingPatterns || stripPatterns,
			}

			if cmd.Flags().Changed("fallback") {
				opts.Fallback = fallback
			}

			style := cfg.Preferences.CaseNormalization
			if cmd.Flags().Changed("case") {
				style = caseStyle
			}
			opts.CaseStyle = casing.ParseStyle(style)

			switch pathCase {
			case "auto", "":
			case "sensitive":
				v := true
				opts.CaseSensitivePaths = &v
			case "insensitive":
				v := false
				opts.CaseSensitivePaths = &v
			default:
				return fmt.Errorf("unknown path-case: %s (want auto, sensitive or insensitive)", pathCase)
			}

			if templateName != "" {
				tmpl, ok := cfg.TemplateByName(templateName)
				if !ok {
					return fmt.Errorf("template not found: %s", templateName)
				}
				opts.Template = &tmpl
			}
			if folderName != "" {
				fs, ok := cfg.FolderStructureByName(folderName)
				if !ok {
					return fmt.Errorf("folder structure not found: %s", folderName)
				}
				opts.FolderPattern = fs.Pattern
			}

			var resolver *rules.Resolver
			if opts.Template == nil {
				resolver, err = rules.NewResolver(rules.Config{
					Templates:        cfg.Templates,
					FolderStructures: cfg.FolderStructures,
					MetadataRules:    cfg.MetadataRules,
					FilenameRules:    cfg.FilenameRules,
					PriorityMode:     cfg.Preferences.RulePriorityMode,
				})
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var spinner *pterm.SpinnerPrinter
			if isatty.IsTerminal(os.Stderr.Fd()) {
				spinner, _ = pterm.DefaultSpinner.WithWriter(os.Stderr).Start("Scanning " + folder)
			}
			failSpinner := func() {
				if spinner != nil {
					_ = spinner.Stop()
				}
			}

			scanOpts := scanner.Options{
				Recursive:     recursive,
				Extensions:    extensions,
				IncludeHidden: includeHidden,
			}
			if !cmd.Flags().Changed("recursive") {
				scanOpts.Recursive = cfg.Preferences.Recursive
			}
			if spinner != nil {
				scanOpts.Progress = func(discovered int, name string) {
					spinner.UpdateText(fmt.Sprintf("Scanning: %d files", discovered))
				}
			}

			scanned, err := scanner.New().Scan(ctx, folder, scanOpts)
			if err != nil {
				failSpinner()
				return err
			}

			if spinner != nil {
				spinner.UpdateText(fmt.Sprintf("Reading metadata from %d files", len(scanned.Files)))
			}
			metadata, err := extract.New(extract.Options{}).ExtractBatch(ctx, scanned.Files)
			if err != nil {
				failSpinner()
				return err
			}

			gen, err := preview.NewGenerator(resolver, filesystem.NewOS(), opts)
			if err != nil {
				failSpinner()
				return err
			}
			result, err := gen.Generate(ctx, scanned.Files, metadata)
			if err != nil {
				failSpinner()
				return err
			}
			if spinner != nil {
				spinner.Success(fmt.Sprintf("Previewed %d files", result.Summary.Total))
			}

			formatName := format
			if !cmd.Flags().Changed("format") && cfg.Preferences.DefaultOutputFormat != "" {
				formatName = cfg.Preferences.DefaultOutputFormat
			}
			f, err := ui.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if err := output.NewRenderer(cmd.OutOrStdout(), f.Resolve(os.Stdout)).Render(result); err != nil {
				return err
			}

			switch {
			case result.Summary.Conflicts > 0:
				return &exitCodeError{code: 2, msg: fmt.Sprintf("%d conflicts", result.Summary.Conflicts)}
			case result.Summary.MissingData+result.Summary.InvalidName > 0:
				n := result.Summary.MissingData + result.Summary.InvalidName
				return &exitCodeError{code: 3, msg: fmt.Sprintf("%d files need attention", n)}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "Template name to apply to every file (bypasses rules)")
	cmd.Flags().StringVar(&folderName, "folder-structure", "", "Folder structure name for organize mode")
	cmd.Flags().StringVar(&baseDir, "into", "", "Destination root for organize mode (default: each file's directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Output format: auto, table, plain or json")
	cmd.Flags().StringVar(&caseStyle, "case", "", "Case style: kebab-case, snake_case, camelCase, PascalCase, lowercase, UPPERCASE or none")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Fallback value for unresolvable placeholders")
	cmd.Flags().StringVar(&pathCase, "path-case", "auto", "Path comparison for conflicts: auto, sensitive or insensitive")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Include hidden files")
	cmd.Flags().BoolVar(&stripPatterns, "strip-patterns", false, "Strip existing date and counter patterns before renaming")
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "Only include these extensions (comma-separated, no dots)")

	return cmd
}
