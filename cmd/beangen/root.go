package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toyz/beangen/internal/cli"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/utils"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "beangen [dirs...]",
		Short: "Generate Java bean classes from @Bean templates",
		Long: `beangen scans Java sources for classes annotated @Bean or @BeanTemplate and
generates a companion class for each: pass-through constructors, getters,
setters and an optional fluent builder.

Directories given without a subcommand are generated, so "beangen ./src"
is the same as "beangen generate ./src".

Configuration is read from beangen.toml in the working directory (or --config),
then BEANGEN_* environment variables, then flags.`,
		Example: `  beangen ./src/main/java                 # Generate into ./generated-sources
  beangen generate -o build/gen ./src/...  # Choose the output directory
  beangen generate --watch ./src          # Regenerate on every change
  beangen clean -o build/gen              # Delete generated classes
  beangen render model.json               # Render a JSON model to stdout
  beangen serve --framework echo          # Start the HTTP render service`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(cmd, args)
		},
	}

	root.PersistentFlags().String("config", "", "Configuration file (default ./beangen.toml)")
	root.PersistentFlags().Bool("verbose", false, "Enable verbose output and detailed error reporting")
	root.PersistentFlags().Bool("quiet", false, "Only show errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addGenerateFlags(root.Flags())

	root.AddCommand(
		newGenerateCmd(),
		newCleanCmd(),
		newRenderCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// flagBindings maps configuration keys to the flag names that override them
var flagBindings = map[string]string{
	"output_dir":       "out",
	"exclude":          "exclude",
	"workers":          "workers",
	"dry_run":          "dry-run",
	"verbose":          "verbose",
	"quiet":            "quiet",
	"server.addr":      "addr",
	"server.framework": "framework",
}

// loadConfig merges beangen.toml, the environment and the flags cmd defines.
// Non-empty dirs replace source_dirs.
func loadConfig(cmd *cobra.Command, dirs []string) (cli.Config, error) {
	v := cli.NewViper()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return cli.Config{}, err
	}
	if len(dirs) > 0 {
		v.Set("source_dirs", dirs)
	}

	configFile, _ := cmd.Flags().GetString("config")
	return cli.LoadConfig(v, configFile)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.WrapConfigurationError("flag "+name, "bind", err)
		}
	}
	return nil
}

// newDiagnostics creates the terminal output for cmd. Redirected output gets no colors.
func newDiagnostics(cmd *cobra.Command, level utils.DiagnosticLevel) *utils.DiagnosticSystem {
	diagnostics := utils.NewDiagnosticSystem(level)
	if cmd.OutOrStdout() != os.Stdout || cmd.ErrOrStderr() != os.Stderr {
		diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return diagnostics
}

// report prints err through the error reporter and marks it as reported
func report(cmd *cobra.Command, verbose bool, err error) error {
	cli.NewDiagnosticReporter(cmd.ErrOrStderr(), verbose).ReportError(err)
	return errReported
}
