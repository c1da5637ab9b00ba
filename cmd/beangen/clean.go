package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/beangen/internal/cli"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete generated classes from the output directory",
		Long: `Clean removes every .java file under the output directory that carries the
@Generated marker of the configured generator name, then prunes directories
left empty. Hand-written files are never touched.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}

	cmd.Flags().StringP("out", "o", cli.DefaultOutputDir, "Output directory to clean")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	config, err := loadConfig(cmd, nil)
	if err != nil {
		return report(cmd, verbose, err)
	}

	diagnostics := newDiagnostics(cmd, config.DiagnosticLevel())
	diagnostics.Header("Cleaning generated sources")
	diagnostics.SourcePath(config.OutputDir)

	removed, err := cli.NewCleaner(nil).CleanGeneratedFiles([]string{config.OutputDir}, config.EmitOptions().Marker())
	if err != nil {
		return report(cmd, config.Verbose, err)
	}

	for _, file := range removed {
		diagnostics.Verbose("Removed %s", file)
	}
	diagnostics.Success("Removed %d generated file(s)", len(removed))
	return nil
}
