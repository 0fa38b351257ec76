// Package scanner walks font source directories and builds the per-source
// family and file indexes the clash detector and merge engine consume.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/typevault/fontmerge/pkg/ignore"
	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/safeio"
	"github.com/typevault/fontmerge/pkg/sfnt"
)

// DefaultExtensions are the font container extensions recognized when no
// others are configured.
var DefaultExtensions = []string{".ttf", ".ttc", ".otf"}

// DefaultWorkers bounds parallel metadata extraction when no worker count
// is configured.
const DefaultWorkers = 4

// Options configures a Scanner.
type Options struct {
	// Extensions lists recognized font extensions (with dot, any case).
	// Empty means DefaultExtensions.
	Extensions []string
	// Include restricts the scan to relative paths matching at least one
	// doublestar glob. Empty means everything.
	Include []string
	// Exclude drops relative paths matching any doublestar glob.
	Exclude []string
	// Workers bounds parallel metadata extraction. Zero or negative means
	// DefaultWorkers.
	Workers int
	// UseIgnoreFile consults .fontmergeignore and .gitignore patterns at
	// the source root.
	UseIgnoreFile bool
}

// Scanner scans source directories into Sources. A single Scanner may be
// reused across sources; it holds no per-scan state.
type Scanner struct {
	extensions map[string]bool
	include    []string
	exclude    []string
	workers    int
	useIgnore  bool
}

// New creates a Scanner from opts.
func New(opts Options) *Scanner {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{
		extensions: extSet,
		include:    opts.Include,
		exclude:    opts.Exclude,
		workers:    workers,
		useIgnore:  opts.UseIgnoreFile,
	}
}

// ScanSource walks root, extracts metadata from every recognized font
// file, and assembles the source's indexes. The walk order and the index
// contents are deterministic: files are visited in sorted relative-path
// order and records are collected before assembly, so worker scheduling
// never leaks into the result. A missing or unreadable root is an error.
func (s *Scanner) ScanSource(ctx context.Context, name, root string) (*Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %q: %s is not a directory", name, root)
	}

	paths, err := s.collectFontFiles(name, root)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}

	recordsPerFile, err := s.extract(ctx, name, root, paths)
	if err != nil {
		return nil, err
	}

	families := make(FamilyIndex)
	for i, relPath := range paths {
		for _, rec := range recordsPerFile[i] {
			families[rec.Family] = append(families[rec.Family], Entry{
				Path:      relPath,
				Subfamily: rec.Subfamily,
				Version:   rec.Version,
			})
		}
	}
	for family, entries := range families {
		families[family] = sortAndDedup(entries)
	}

	logger.Debug("scanned source",
		logger.String("source", name),
		logger.Int("files", len(paths)),
		logger.Int("families", len(families)))

	return &Source{
		Name:      name,
		Root:      root,
		Families:  families,
		Files:     families.Invert(),
		FontFiles: paths,
	}, nil
}

// collectFontFiles walks root and returns the sorted relative paths of
// every recognized font file that survives the include, exclude, and
// ignore filters.
func (s *Scanner) collectFontFiles(name, root string) ([]string, error) {
	var matcher *ignore.Matcher
	if s.useIgnore {
		m, err := ignore.NewMatcher(root)
		if err != nil {
			logger.Warn("ignore patterns unavailable, scanning everything",
				logger.String("source", name), logger.Err(err))
		} else {
			matcher = m
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && matcher != nil && matcher.IsIgnoredDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if matcher != nil && matcher.IsIgnored(rel) {
			return nil
		}
		if !s.matchesGlobs(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// matchesGlobs applies the include and exclude doublestar patterns to a
// slash-relative path.
func (s *Scanner) matchesGlobs(rel string) bool {
	if len(s.include) > 0 {
		matched := false
		for _, pattern := range s.include {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// extract reads and parses the given files in parallel. Results land in a
// slice indexed by position, so the caller sees them in path order no
// matter how the workers are scheduled. Unreadable or unparseable files
// contribute no records; per-file problems never fail the scan.
func (s *Scanner) extract(ctx context.Context, name, root string, paths []string) ([][]sfnt.Record, error) {
	results := make([][]sfnt.Record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, relPath := range paths {
		i, relPath := i, relPath
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			data, err := safeio.ReadFileContained(root, filepath.Join(root, filepath.FromSlash(relPath)))
			if err != nil {
				logger.Debug("unreadable font file skipped",
					logger.String("source", name),
					logger.String("file", relPath),
					logger.Err(err))
				return nil
			}
			records, err := sfnt.Parse(data)
			if err != nil {
				logger.Debug("unparseable font file skipped",
					logger.String("source", name),
					logger.String("file", relPath),
					logger.Err(err))
				return nil
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// sortAndDedup orders entries by (path, subfamily) and drops duplicates of
// that key, keeping the first occurrence.
func sortAndDedup(entries []Entry) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Subfamily < entries[j].Subfamily
	})
	deduped := entries[:0]
	for _, e := range entries {
		if n := len(deduped); n > 0 && deduped[n-1].Path == e.Path && deduped[n-1].Subfamily == e.Subfamily {
			continue
		}
		deduped = append(deduped, e)
	}
	return deduped
}
