package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chainalign/internal/diag"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	opts, err := cfg.AlignOptions()
	require.NoError(t, err)
	require.Equal(t, 4, opts.IndentUnit)
	require.Equal(t, 4, opts.BracketIndent)
	require.Equal(t, diag.SevWarning, opts.Severity)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[align]
indent_unit = 2
bracket_property_indent = 3
severity = "error"

[files]
exclude = ["**/dist/**"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, dir, cfg.Root)
	require.Equal(t, DefaultInclude, cfg.Files.Include)
	require.Equal(t, []string{"**/dist/**"}, cfg.Files.Exclude)

	opts, err := cfg.AlignOptions()
	require.NoError(t, err)
	require.Equal(t, 2, opts.IndentUnit)
	require.Equal(t, 3, opts.BracketIndent)
	require.Equal(t, diag.SevError, opts.Severity)
}

func TestLoadRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero indent", "[align]\nindent_unit = 0\n"},
		{"negative bracket indent", "[align]\nbracket_property_indent = -2\n"},
		{"bad severity", "[align]\nseverity = \"fatal\"\n"},
		{"unknown key", "[align]\nindent = 4\n"},
		{"bad glob", "[files]\ninclude = [\"[\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestLoadRejectsBrokenTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[align\n")
	_, err := Load(path)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidOption)
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[align]\nindent_unit = 8\n")
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, FileName), cfg.Path)
	require.Equal(t, 8, cfg.Align.IndentUnit)

	file := filepath.Join(nested, "a.js")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o600))
	path, ok, err := Find(file)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, FileName), path)
}

func TestMatcher(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Root = root
	m, err := cfg.Matcher()
	require.NoError(t, err)

	require.True(t, m.Match(filepath.Join(root, "a.js")))
	require.True(t, m.Match(filepath.Join(root, "src", "deep", "b.mjs")))
	require.False(t, m.Match(filepath.Join(root, "src", "b.ts")))
	require.False(t, m.Match(filepath.Join(root, "node_modules", "pkg", "index.js")))
	require.True(t, m.SkipDir(filepath.Join(root, "node_modules")))
	require.True(t, m.SkipDir(filepath.Join(root, "web", "node_modules")))
	require.False(t, m.SkipDir(filepath.Join(root, "src")))
	require.False(t, m.SkipDir(root))
}
