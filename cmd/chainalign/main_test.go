package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chainalign/internal/diag"
	"chainalign/internal/driver"
	"chainalign/internal/source"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, body string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return dir, path
}

func TestParseFailOn(t *testing.T) {
	tests := []struct {
		in      string
		sev     diag.Severity
		enabled bool
		wantErr bool
	}{
		{"none", 0, false, false},
		{"warning", diag.SevWarning, true, false},
		{"error", diag.SevError, true, false},
		{"fatal", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sev, enabled, err := parseFailOn(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.enabled, enabled)
			require.Equal(t, tt.sev, sev)
		})
	}
}

func TestColorMode(t *testing.T) {
	var buf bytes.Buffer
	on, err := colorMode("on", &buf)
	require.NoError(t, err)
	require.True(t, on)

	auto, err := colorMode("auto", &buf)
	require.NoError(t, err)
	require.False(t, auto, "a buffer is never a terminal")

	_, err = colorMode("sometimes", &buf)
	require.Error(t, err)
}

func TestTruncateAndSummary(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.AlignDotColumn, source.Span{}, "a"))
	bag.Add(diag.New(diag.SevError, diag.AlignPropertyColumn, source.Span{}, "b"))

	require.Equal(t, 1, truncate(bag, 1).Len())
	require.Equal(t, 2, truncate(bag, 0).Len())

	s := summarize([]driver.DiagnoseResult{{Bag: bag}, {Bag: diag.NewBag(0)}})
	require.Equal(t, "2 problem(s) (1 error(s), 1 warning(s)) in 2 file(s)", s.String())
}

func TestCheckCommand(t *testing.T) {
	dir, _ := writeSource(t, "foo\n  .bar\n")

	out, _, err := execute(t, "check", "--format", "short", "--fail-on", "warning", "--color", "off", dir)
	require.ErrorIs(t, err, errViolations)
	require.Contains(t, out, "warning ALN1001 ")
	require.Contains(t, out, "a.js:2:3 member dot operator should be at column 4")

	_, _, err = execute(t, "check", "--format", "short", "--fail-on", "none", "--color", "off", dir)
	require.NoError(t, err)

	_, _, err = execute(t, "check", "--format", "xml", "--fail-on", "none", dir)
	require.Error(t, err)
}

func TestCheckCommandOverridesIndent(t *testing.T) {
	dir, _ := writeSource(t, "foo\n  .bar\n")

	out, _, err := execute(t, "check", "--format", "short", "--fail-on", "warning", "--indent-unit", "2", dir)
	require.NoError(t, err)
	require.Empty(t, out)

	// flags keep their values between executions of the same command tree
	_, _, err = execute(t, "check", "--format", "short", "--fail-on", "warning", "--indent-unit", "4", dir)
	require.ErrorIs(t, err, errViolations)
}

func TestFixCommand(t *testing.T) {
	_, path := writeSource(t, "foo\n  .bar\n")

	out, _, err := execute(t, "fix", "--dry-run", "--quiet", path)
	require.NoError(t, err)
	require.Contains(t, out, "-  .bar\n+    .bar\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "foo\n  .bar\n", string(data))

	_, _, err = execute(t, "fix", "--dry-run=false", "--quiet", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "foo\n    .bar\n", string(data))
}

func TestTokensCommand(t *testing.T) {
	_, path := writeSource(t, "foo\n  .bar\n")

	out, _, err := execute(t, "tokens", "--format", "pretty", path)
	require.NoError(t, err)
	require.Contains(t, out, "Dot")
	require.Contains(t, out, "(leading)")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"tool": "chainalign"`)
}
