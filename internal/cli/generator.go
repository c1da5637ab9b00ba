package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/beangen/internal/discovery"
	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/generator"
	"github.com/toyz/beangen/internal/parser"
	"github.com/toyz/beangen/internal/utils"
)

// BeanMarker finds @Bean or @BeanTemplate, simple or qualified, in a source
// file. Files without a match are never parsed.
var BeanMarker = regexp.MustCompile(`@\s*(?:[\p{L}_$][\p{L}\p{N}_$]*\s*\.\s*)*Bean(?:Template)?\b`)

// Summary describes one generation run
type Summary struct {
	RunID             string
	FilesScanned      int
	FilesParsed       int
	ClassesDiscovered int
	BeansGenerated    int
	FilesWritten      int
	FilesUnchanged    int
	Errors            int
	Warnings          int
	CacheHits         int64
	Elapsed           time.Duration
	GeneratedFiles    []string
}

// Stats returns the summary counters keyed for display
func (s Summary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Run":                s.RunID,
		"Files scanned":      s.FilesScanned,
		"Files parsed":       s.FilesParsed,
		"Classes discovered": s.ClassesDiscovered,
		"Beans generated":    s.BeansGenerated,
		"Files written":      s.FilesWritten,
		"Files unchanged":    s.FilesUnchanged,
		"Errors":             s.Errors,
		"Warnings":           s.Warnings,
		"Cache hits":         s.CacheHits,
		"Elapsed":            s.Elapsed.Round(time.Millisecond),
	}
}

// Generator orchestrates scanning, parsing, discovery, emission and writing
type Generator struct {
	reader      *utils.FileReader
	scanner     *DirectoryScanner
	parser      *parser.Parser
	discoverer  *discovery.Discoverer
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	dryRunOut   io.Writer
}

// NewGenerator creates a generator. A nil diagnostics system is replaced by a quiet one.
func NewGenerator(diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(nil, false)
	}

	reader := utils.NewFileReader()
	return &Generator{
		reader:      reader,
		scanner:     NewDirectoryScanner(utils.NewFileProcessorWithReader(reader)),
		parser:      parser.NewParser(reader),
		discoverer:  discovery.NewDiscoverer(nil),
		diagnostics: diagnostics,
		reporter:    reporter,
		dryRunOut:   os.Stdout,
	}
}

// SetDryRunOutput sets where dry runs print sources
func (g *Generator) SetDryRunOutput(out io.Writer) {
	g.dryRunOut = out
}

// Invalidate drops cached content for a changed source file
func (g *Generator) Invalidate(path string) {
	g.parser.Invalidate(path)
}

// Run performs one generation pass. Files that fail to parse and classes that
// fail discovery are reported together after every other target has been written.
func (g *Generator) Run(ctx context.Context, config Config) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}

	if err := config.Validate(); err != nil {
		return summary, err
	}

	g.diagnostics.Header("Generating bean classes")
	g.diagnostics.Verbose("Run %s with %d workers", summary.RunID, config.Workers)

	roots, err := g.scanner.ResolveRoots(config.SourceDirs)
	if err != nil {
		return summary, err
	}
	for _, root := range roots {
		g.diagnostics.SourcePath(root)
	}

	files, err := g.scanner.ScanJavaFiles(config.SourceDirs, config.Excludes, config.OutputDir)
	if err != nil {
		return summary, err
	}
	summary.FilesScanned = len(files)

	var problems *errors.MultipleErrors

	g.diagnostics.PhaseHeader("Parsing")
	sources, err := g.parseAll(ctx, files, config.Workers)
	if err != nil {
		return summary, err
	}
	for _, src := range sources {
		if src.err != nil {
			errors.AddToMultiple(&problems, asBeanError(src.err))
			continue
		}
		if src.file != nil {
			summary.FilesParsed++
			g.diagnostics.Verbose("Parsed %s", src.path)
		}
	}
	g.diagnostics.PhaseItem(fmt.Sprintf("Parsed %d of %d source files", summary.FilesParsed, summary.FilesScanned))

	g.diagnostics.PhaseHeader("Discovery")
	targets := g.discoverAll(sources, &summary, &problems)
	g.diagnostics.PhaseItem(fmt.Sprintf("Discovered %d bean classes", len(targets)))

	g.diagnostics.PhaseHeader("Generation")
	if err := g.generateAll(ctx, targets, config, &summary, &problems); err != nil {
		return summary, err
	}

	if problems != nil {
		summary.Errors = problems.Count()
	}
	summary.CacheHits = g.reader.GetCacheStats().Hits
	summary.Elapsed = time.Since(start)

	g.diagnostics.Summary("Summary", summary.Stats())
	if summary.Errors == 0 {
		g.diagnostics.GenerationComplete()
	}

	return summary, problems.ErrOrNil()
}

type parsedSource struct {
	path string
	file *parser.SourceFile
	err  error
}

// parseAll parses every file carrying BeanMarker with at most workers files in flight.
// Results keep the order of files.
func (g *Generator) parseAll(ctx context.Context, files []string, workers int) ([]parsedSource, error) {
	results := make([]parsedSource, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i].path = path
			marked, err := g.reader.Matches(path, BeanMarker)
			if err != nil {
				results[i].err = errors.WrapFileSystemError("read", path, err)
				return nil
			}
			if !marked {
				return nil
			}

			results[i].file, results[i].err = g.parser.ParseFile(path)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// discoverAll runs discovery in file order and drops targets whose generated
// name was already claimed by an earlier class
func (g *Generator) discoverAll(sources []parsedSource, summary *Summary, problems **errors.MultipleErrors) []discovery.Target {
	var result discovery.Result
	for _, src := range sources {
		if src.file != nil {
			result.Merge(g.discoverer.Discover(src.file))
		}
	}

	for _, w := range result.Warnings {
		summary.Warnings++
		if g.diagnostics.Level() >= utils.DiagnosticWarn {
			g.reporter.ReportWarning(w)
		}
	}
	for _, err := range result.Errors {
		errors.AddToMultiple(problems, err)
	}

	claimed := make(map[string]discovery.Target)
	var targets []discovery.Target
	for _, t := range result.Targets {
		summary.ClassesDiscovered++
		if first, ok := claimed[t.QualifiedName]; ok {
			errors.AddToMultiple(problems, errors.NewDuplicateTargetError(t.QualifiedName, first.Class, t.Class, t.Location))
			continue
		}
		claimed[t.QualifiedName] = t
		targets = append(targets, t)
		g.diagnostics.Verbose("%s -> %s", t.Class, t.QualifiedName)
	}
	return targets
}

type writeResult struct {
	dest    string
	outcome WriteOutcome
	err     error
}

// generateAll emits and writes every target with bounded parallelism
func (g *Generator) generateAll(ctx context.Context, targets []discovery.Target, config Config, summary *Summary, problems **errors.MultipleErrors) error {
	emitter := generator.NewEmitter(config.EmitOptions())
	writer := NewFileWriter(config.OutputDir, config.DryRun, g.dryRunOut)
	results := make([]writeResult, len(targets))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.Workers)

	for i, target := range targets {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = g.emit(emitter, writer, target)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		if res.err != nil {
			errors.AddToMultiple(problems, asBeanError(res.err))
			continue
		}

		summary.BeansGenerated++
		switch res.outcome {
		case Written:
			summary.FilesWritten++
			summary.GeneratedFiles = append(summary.GeneratedFiles, res.dest)
			g.diagnostics.PhaseProgress("Writing " + res.dest)
		case Unchanged:
			summary.FilesUnchanged++
			g.diagnostics.Verbose("Unchanged %s", res.dest)
		case Printed:
			g.diagnostics.Verbose("Printed %s", targets[i].QualifiedName)
		}
	}
	return nil
}

func (g *Generator) emit(emitter generator.CodeGenerator, writer *FileWriter, target discovery.Target) writeResult {
	src, err := emitter.Generate(target.GenerationTarget)
	if err != nil {
		return writeResult{err: errors.WrapGenerateError(target.QualifiedName, target.Location.File, err).WithStage("emit")}
	}

	dest, outcome, err := writer.Write(src)
	if err != nil {
		return writeResult{dest: dest, err: errors.WrapGenerateError(target.QualifiedName, dest, err).WithStage("write")}
	}
	return writeResult{dest: dest, outcome: outcome}
}

func asBeanError(err error) errors.BeanError {
	var beanErr errors.BeanError
	if stderrors.As(err, &beanErr) {
		return beanErr
	}
	return errors.Wrap(errors.UnknownErrorCode, "generation failed", err)
}
