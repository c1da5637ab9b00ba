package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/beangen/internal/discovery"
	"github.com/toyz/beangen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to out, or stderr when out is nil
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	if out == nil {
		out = os.Stderr
	}
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportWarning prints one discovery warning
func (r *DiagnosticReporter) ReportWarning(w discovery.Warning) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", w)
}

// ReportError prints err. Collections are reported one entry at a time.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		fmt.Fprintf(r.out, "\nERROR: %d problem(s) found\n", multi.Count())
		fmt.Fprintf(r.out, "=====================\n")
		for i, e := range multi.Errors {
			fmt.Fprintf(r.out, "\n[%d/%d] ", i+1, multi.Count())
			r.reportBeanError(e)
		}
		fmt.Fprintf(r.out, "\n")
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var beanErr errors.BeanError
	if stderrors.As(err, &beanErr) {
		r.reportBeanError(beanErr)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

// reportBeanError reports a BeanError with location, context and suggestions
func (r *DiagnosticReporter) reportBeanError(err errors.BeanError) {
	fmt.Fprintf(r.out, "Type: %s\n", err.ErrorCode())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc)
	}

	fmt.Fprintf(r.out, "Message: %s\n", err.Error())

	if r.verbose {
		if context := err.Context(); len(context) > 0 {
			r.printContext(context)
		}
		if cause := err.Unwrap(); cause != nil {
			fmt.Fprintf(r.out, "Underlying cause: %s\n", cause.Error())
		}
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
