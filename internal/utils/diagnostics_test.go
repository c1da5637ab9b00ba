package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   DiagnosticLevel
		want    []string
		notWant []string
	}{
		{
			name:    "quiet",
			level:   DiagnosticError,
			notWant: []string{"[WARN]", "[INFO]", "[VERBOSE]", "[DEBUG]"},
		},
		{
			name:    "info",
			level:   DiagnosticInfo,
			want:    []string{"[WARN] w", "[INFO] i", "[SUCCESS] s"},
			notWant: []string{"[VERBOSE]", "[DEBUG]"},
		},
		{
			name:  "debug",
			level: DiagnosticDebug,
			want:  []string{"[INFO] i", "[VERBOSE] v", "[DEBUG] d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, out, errOut := newBufferedDiagnostics(tt.level)

			d.Error("e")
			d.Warn("w")
			d.Info("i")
			d.Success("s")
			d.Verbose("v")
			d.Debug("d")

			assert.Equal(t, "[ERROR] e\n", errOut.String())
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestDiagnosticSystem_Silent(t *testing.T) {
	d, out, errOut := newBufferedDiagnostics(DiagnosticSilent)
	d.Error("e")
	d.Header("h")
	d.Summary("title", map[string]interface{}{"a": 1})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestDiagnosticSystem_Indent(t *testing.T) {
	d, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	d.Indent()
	d.Info("nested")
	d.Unindent()
	d.Unindent()
	d.Info("top")

	assert.Equal(t, "  [INFO] nested\n[INFO] top\n", out.String())
}

func TestDiagnosticSystem_Summary(t *testing.T) {
	d, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	d.Summary("Summary", map[string]interface{}{"Written": 2, "Errors": 0})

	assert.Equal(t, "\nSummary\n   Errors: 0\n   Written: 2\n\n", out.String())
}

func TestDiagnosticSystem_Phases(t *testing.T) {
	d, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	d.Header("Generating bean classes")
	d.SourcePath("/src")
	d.PhaseHeader("Parsing")
	d.PhaseItem("Parsed 1 of 1 source files")
	d.PhaseProgress("Writing com/x/Person.java")
	d.PhaseProgress("Skipping")
	d.GenerationComplete()

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "beangen: Generating bean classes", lines[0])
	assert.Equal(t, "Source Path: /src", lines[1])
	assert.Contains(t, out.String(), "\nParsing:\n")
	assert.Contains(t, out.String(), "✓ Parsed 1 of 1 source files\n")
	assert.Contains(t, out.String(), "✏ Writing com/x/Person.java\n")
	assert.Contains(t, out.String(), "- Skipping\n")
	assert.True(t, strings.HasSuffix(out.String(), "beangen: Generation complete!\n"))
}

func TestDiagnosticSystem_Level(t *testing.T) {
	assert.Equal(t, DiagnosticError, NewQuietDiagnostics().Level())
	assert.Equal(t, DiagnosticVerbose, NewVerboseDiagnostics().Level())
}
