package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/toyz/beangen/internal/cli"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/pkg/beangen"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [model.json|-]",
		Short: "Render generation targets from a JSON model",
		Long: `Render reads one JSON target object or an array of them from a file, or from
stdin when the argument is "-" or missing, and prints the generated source.
With --out the files are written to that directory instead.`,
		Example: `  beangen render person.json
  cat targets.json | beangen render -o build/gen`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	cmd.Flags().StringP("out", "o", "", "Write generated files under this directory instead of stdout")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	config, err := loadConfig(cmd, nil)
	if err != nil {
		return report(cmd, verbose, err)
	}

	input, name, closeInput, err := openModel(cmd, args)
	if err != nil {
		return report(cmd, verbose, err)
	}
	defer closeInput()

	targets, err := beangen.DecodeTargets(input)
	if err != nil {
		return report(cmd, verbose, errors.WrapParseError("model "+name, err).
			WithSuggestion("The model is one target object or an array of them"))
	}
	sources := beangen.Generate(targets, config.EmitOptions())

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return printSources(cmd.OutOrStdout(), sources)
	}

	diagnostics := newDiagnostics(cmd, config.DiagnosticLevel())
	writer := cli.NewFileWriter(out, false, cmd.OutOrStdout())
	for _, src := range sources {
		dest, outcome, err := writer.Write(src)
		if err != nil {
			return report(cmd, verbose, err)
		}
		diagnostics.Info("%s %s", outcome, dest)
	}
	return nil
}

// openModel returns the model named by args, stdin for "-" or no argument
func openModel(cmd *cobra.Command, args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), "stdin", func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, args[0], nil, errors.WrapFileSystemError("open", args[0], err)
	}
	return f, args[0], func() { f.Close() }, nil
}

// printSources writes a single source as is; several are each preceded by a path comment
func printSources(w io.Writer, sources []*beangen.GeneratedSource) error {
	if len(sources) == 1 {
		_, err := io.WriteString(w, sources[0].Content)
		return err
	}

	for i, src := range sources {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "// %s\n%s", src.Path, src.Content); err != nil {
			return err
		}
	}
	return nil
}
