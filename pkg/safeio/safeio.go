package safeio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	// Normalize to forward slashes for cross-platform consistency
	return filepath.ToSlash(c), nil
}

// ReadFileContained reads a file only if it is contained within baseDir.
// Source roots are user configuration, so every font file read goes through
// this containment check before the bytes are parsed.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	baseDirAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New("failed to resolve base directory")
	}
	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseDirAbs, filePathAbs)
	if err != nil {
		return nil, errors.New("failed to compute relative path")
	}

	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return nil, errors.New("file path is outside base directory")
	}

	// #nosec G304 -- filePathAbs has been verified to be contained within baseDirAbs
	return os.ReadFile(filePathAbs)
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// CopyFile copies src to dst, carrying over the source file mode.
// dst is truncated if it already exists.
func CopyFile(src, dst string) error {
	st, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !st.Mode().IsRegular() {
		return errors.New("source is not a regular file")
	}
	mode := st.Mode() & 0o777
	if mode == 0 {
		mode = 0o644
	}

	// #nosec G304 -- src comes from a scanned source root
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	// #nosec G304 -- dst is built from the configured output directory
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
