package merge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/safeio"
	"github.com/typevault/fontmerge/pkg/scanner"
)

// ExecuteOptions configure Execute.
type ExecuteOptions struct {
	// OutputDir is the merged output directory. It is removed and
	// recreated on every real run so stale files never survive.
	OutputDir string
	// DryRun stats the source files and reports what would be copied
	// without touching the output directory.
	DryRun bool
	// Checksums computes a SHA-256 digest of every written file, read
	// back from the output directory.
	Checksums bool
}

// CopyResult records one executed (or, under DryRun, simulated) copy.
type CopyResult struct {
	Source string `json:"source" yaml:"source"`
	Path   string `json:"file" yaml:"file"`
	Output string `json:"output" yaml:"output"`
	Size   int64  `json:"size" yaml:"size"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

// Execute copies every planned file into opts.OutputDir under its
// canonical name, preserving file modes and modification times. Results
// come back in plan order. Any copy failure aborts the run; there is no
// partial-success mode beyond the skips already planned.
func Execute(ctx context.Context, plan *Plan, sources []*scanner.Source, opts ExecuteOptions) ([]CopyResult, error) {
	roots := make(map[string]string, len(sources))
	for _, src := range sources {
		roots[src.Name] = src.Root
	}

	if !opts.DryRun {
		if err := os.RemoveAll(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("reset output dir: %w", err)
		}
		if err := safeio.EnsureDir(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	results := make([]CopyResult, 0, len(plan.Copies))
	for _, c := range plan.Copies {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		root, ok := roots[c.Source]
		if !ok {
			return nil, fmt.Errorf("plan names unknown source %q", c.Source)
		}
		srcPath := filepath.Join(root, filepath.FromSlash(c.Path))
		result := CopyResult{Source: c.Source, Path: c.Path, Output: c.Output}

		if opts.DryRun {
			st, err := os.Stat(srcPath)
			if err != nil {
				return nil, fmt.Errorf("source %s: %s: %w", c.Source, c.Path, err)
			}
			result.Size = st.Size()
			results = append(results, result)
			continue
		}

		dstPath := filepath.Join(opts.OutputDir, c.Output)
		if err := safeio.CopyFile(srcPath, dstPath); err != nil {
			return nil, fmt.Errorf("copy %s from %s: %w", c.Path, c.Source, err)
		}
		if st, err := os.Stat(srcPath); err == nil {
			_ = os.Chtimes(dstPath, st.ModTime(), st.ModTime())
		}
		st, err := os.Stat(dstPath)
		if err != nil {
			return nil, fmt.Errorf("stat copied %s: %w", c.Output, err)
		}
		result.Size = st.Size()
		if opts.Checksums {
			sum, err := fileSHA256(dstPath)
			if err != nil {
				return nil, fmt.Errorf("checksum %s: %w", c.Output, err)
			}
			result.SHA256 = sum
		}
		logger.Debug("copied font",
			logger.String("source", c.Source),
			logger.String("file", c.Path),
			logger.String("output", c.Output))
		results = append(results, result)
	}

	logger.Info("merge executed",
		logger.Int("copied", len(results)),
		logger.Bool("dry_run", opts.DryRun))
	return results, nil
}

// fileSHA256 hashes the file at path.
func fileSHA256(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is inside the output dir just written
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
