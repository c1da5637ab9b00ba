package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toyz/beangen/internal/cli"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [dirs...]",
		Short: "Generate bean classes for every template under the source directories",
		Long: `Generate walks the source directories recursively (a trailing /... is accepted),
parses every Java file mentioning @Bean and writes one generated class per
template into the output directory. Files whose content is unchanged are
left alone. Templates that fail are reported after the rest are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args)
		},
	}

	addGenerateFlags(cmd.Flags())
	return cmd
}

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.StringP("out", "o", cli.DefaultOutputDir, "Output directory for generated sources")
	flags.StringSlice("exclude", nil, "Glob patterns of source files to skip (repeatable)")
	flags.Int("workers", 0, "Files parsed and emitted in parallel (default number of CPUs)")
	flags.Bool("dry-run", false, "Print generated sources instead of writing them")
	flags.Bool("watch", false, "Regenerate whenever a Java source changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	config, err := loadConfig(cmd, args)
	if err != nil {
		return report(cmd, verbose, err)
	}

	diagnostics := newDiagnostics(cmd, config.DiagnosticLevel())
	reporter := cli.NewDiagnosticReporter(cmd.ErrOrStderr(), config.Verbose)

	generator := cli.NewGenerator(diagnostics, reporter)
	generator.SetDryRunOutput(cmd.OutOrStdout())

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		watcher := cli.NewWatcher(generator, diagnostics, func(_ cli.Summary, err error) {
			if err != nil {
				reporter.ReportError(err)
			}
		})
		if err := watcher.Watch(cmd.Context(), config); err != nil {
			return report(cmd, config.Verbose, err)
		}
		return nil
	}

	summary, err := generator.Run(cmd.Context(), config)
	if err != nil {
		return report(cmd, config.Verbose, err)
	}

	if config.Verbose {
		diagnostics.PhaseHeader("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.PhaseItem(file)
		}
	}
	return nil
}
