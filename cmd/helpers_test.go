/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/typevault/fontmerge/pkg/sfnt/sfnttest"
)

// execRoot runs the CLI with a fresh root command and returns everything it
// printed. Subcommands are package singletons, so their flags are reset to
// defaults first; without that, one test's flags leak into the next.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FONTMERGE_HOME", t.TempDir())

	root := newRootCommand()
	registerSubcommands(root)
	for _, c := range root.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func writeTestFont(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s failed: %v", rel, err)
	}
}

// clashingFixture builds two sources that contend over Example/Regular:
// alpha offers Version 1.00, beta offers Version 2.00, and alpha also has
// an uncontended Unique family. Returns the sources manifest path.
func clashingFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeTestFont(t, dir, "alpha/example.ttf",
		sfnttest.BuildFont(sfnttest.Identity("Example", "Regular", "Version 1.00")))
	writeTestFont(t, dir, "alpha/unique.ttf",
		sfnttest.BuildFont(sfnttest.Identity("Unique", "Bold", "Version 4.00")))
	writeTestFont(t, dir, "beta/fonts/example.ttf",
		sfnttest.BuildFont(sfnttest.Identity("Example", "Regular", "Version 2.00")))

	manifest := filepath.Join(dir, "sources.yaml")
	content := `sources:
  - name: alpha
    dir: alpha
  - name: beta
    dir: beta
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources manifest failed: %v", err)
	}
	return manifest
}

// disjointFixture builds two sources with no shared families.
func disjointFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeTestFont(t, dir, "alpha/alpha.ttf",
		sfnttest.BuildFont(sfnttest.Identity("AlphaSans", "Regular", "Version 1.00")))
	writeTestFont(t, dir, "beta/beta.ttf",
		sfnttest.BuildFont(sfnttest.Identity("BetaSerif", "Regular", "Version 1.00")))

	manifest := filepath.Join(dir, "sources.yaml")
	content := `sources:
  - name: alpha
    dir: alpha
  - name: beta
    dir: beta
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources manifest failed: %v", err)
	}
	return manifest
}
