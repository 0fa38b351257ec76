package merge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/typevault/fontmerge/pkg/scanner"
)

func writeSourceFile(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestExecuteCopiesPlannedFiles(t *testing.T) {
	root := t.TempDir()
	content := []byte("font bytes")
	writeSourceFile(t, root, "sub/a.ttf", content)

	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "sub/a.ttf", Output: "Alpha-Regular.ttf"}}}
	outDir := filepath.Join(t.TempDir(), "merged")

	results, err := Execute(context.Background(), plan, sources, ExecuteOptions{OutputDir: outDir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	r := results[0]
	if r.Output != "Alpha-Regular.ttf" || r.Size != int64(len(content)) {
		t.Errorf("result = %+v", r)
	}
	if r.SHA256 != "" {
		t.Errorf("checksum computed without being requested: %q", r.SHA256)
	}

	copied, err := os.ReadFile(filepath.Join(outDir, "Alpha-Regular.ttf"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(copied) != string(content) {
		t.Errorf("copied content = %q, want %q", copied, content)
	}
}

func TestExecuteChecksums(t *testing.T) {
	root := t.TempDir()
	content := []byte("checksum me")
	writeSourceFile(t, root, "a.ttf", content)

	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "a.ttf", Output: "A.ttf"}}}

	results, err := Execute(context.Background(), plan, sources, ExecuteOptions{
		OutputDir: filepath.Join(t.TempDir(), "merged"),
		Checksums: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	sum := sha256.Sum256(content)
	if want := hex.EncodeToString(sum[:]); results[0].SHA256 != want {
		t.Errorf("SHA256 = %q, want %q", results[0].SHA256, want)
	}
}

func TestExecuteDryRun(t *testing.T) {
	root := t.TempDir()
	content := []byte("dry run bytes")
	writeSourceFile(t, root, "a.ttf", content)

	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "a.ttf", Output: "A.ttf"}}}
	outDir := filepath.Join(t.TempDir(), "merged")

	results, err := Execute(context.Background(), plan, sources, ExecuteOptions{
		OutputDir: outDir,
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if results[0].Size != int64(len(content)) {
		t.Errorf("dry-run size = %d, want %d", results[0].Size, len(content))
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("dry run must not create the output directory")
	}
}

func TestExecuteRecreatesOutputDir(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "a.ttf", []byte("fresh"))

	outDir := filepath.Join(t.TempDir(), "merged")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	stale := filepath.Join(outDir, "stale.ttf")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "a.ttf", Output: "A.ttf"}}}
	if _, err := Execute(context.Background(), plan, sources, ExecuteOptions{OutputDir: outDir}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale output file must not survive a merge run")
	}
	if _, err := os.Stat(filepath.Join(outDir, "A.ttf")); err != nil {
		t.Errorf("fresh output missing: %v", err)
	}
}

func TestExecutePreservesModTime(t *testing.T) {
	root := t.TempDir()
	srcPath := writeSourceFile(t, root, "a.ttf", []byte("timed"))
	stamp := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(srcPath, stamp, stamp); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "merged")
	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "a.ttf", Output: "A.ttf"}}}
	if _, err := Execute(context.Background(), plan, sources, ExecuteOptions{OutputDir: outDir}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	st, err := os.Stat(filepath.Join(outDir, "A.ttf"))
	if err != nil {
		t.Fatalf("stat copied file: %v", err)
	}
	if !st.ModTime().Truncate(time.Second).Equal(stamp) {
		t.Errorf("mtime = %v, want %v", st.ModTime(), stamp)
	}
}

func TestExecuteUnknownSource(t *testing.T) {
	plan := &Plan{Copies: []Copy{{Source: "ghost", Path: "a.ttf", Output: "A.ttf"}}}
	_, err := Execute(context.Background(), plan, nil, ExecuteOptions{
		OutputDir: filepath.Join(t.TempDir(), "merged"),
	})
	if err == nil {
		t.Fatal("expected an error for a plan naming an unknown source")
	}
}

func TestExecuteMissingSourceFile(t *testing.T) {
	sources := []*scanner.Source{{Name: "a", Root: t.TempDir()}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "gone.ttf", Output: "G.ttf"}}}
	_, err := Execute(context.Background(), plan, sources, ExecuteOptions{
		OutputDir: filepath.Join(t.TempDir(), "merged"),
	})
	if err == nil {
		t.Fatal("expected an error when a planned file is missing")
	}
}

func TestExecuteCancelled(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "a.ttf", []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []*scanner.Source{{Name: "a", Root: root}}
	plan := &Plan{Copies: []Copy{{Source: "a", Path: "a.ttf", Output: "A.ttf"}}}
	_, err := Execute(ctx, plan, sources, ExecuteOptions{
		OutputDir: filepath.Join(t.TempDir(), "merged"),
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
