package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SourceConfig declares one font source. Declaration order in the manifest
// is the merge precedence order.
type SourceConfig struct {
	Name    string   `yaml:"name" json:"name" toml:"name"`
	Dir     string   `yaml:"dir" json:"dir" toml:"dir"`
	Locales string   `yaml:"locales,omitempty" json:"locales,omitempty" toml:"locales,omitempty"`
	Include []string `yaml:"include,omitempty" json:"include,omitempty" toml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty"`
}

// SourcesFile is a parsed sources manifest.
type SourcesFile struct {
	Sources []SourceConfig `yaml:"sources" json:"sources" toml:"sources"`
}

// Names returns the source names in declaration order.
func (sf *SourcesFile) Names() []string {
	names := make([]string, len(sf.Sources))
	for i, src := range sf.Sources {
		names[i] = src.Name
	}
	return names
}

// DefaultSourcesFiles are the manifest names tried, in order, when no
// explicit path is given.
var DefaultSourcesFiles = []string{"sources.yaml", "sources.yml", "sources.toml"}

// FindSourcesFile resolves the sources manifest path. An explicit path is
// checked as-is; otherwise the default names are tried in the working
// directory.
func FindSourcesFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("sources file %q: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, name := range DefaultSourcesFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, nil
		}
	}

	return "", fmt.Errorf("no sources file found (tried %s)", strings.Join(DefaultSourcesFiles, ", "))
}

// LoadSources reads, validates, and resolves a sources manifest. The file
// may be YAML or TOML, chosen by extension. Source directories and locale
// paths are resolved relative to the manifest's own directory so a run
// behaves the same from any working directory.
func LoadSources(path string) (*SourcesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var doc interface{}
	if err := decodeSources(path, data, &doc); err != nil {
		return nil, err
	}
	if err := ValidateSourcesDoc(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var sf SourcesFile
	if err := decodeSources(path, data, &sf); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(sf.Sources))
	for _, src := range sf.Sources {
		if seen[src.Name] {
			return nil, fmt.Errorf("duplicate source name %q in %s", src.Name, path)
		}
		seen[src.Name] = true
	}

	base := filepath.Dir(path)
	for i := range sf.Sources {
		sf.Sources[i].Dir = resolvePath(base, sf.Sources[i].Dir)
		if sf.Sources[i].Locales != "" {
			sf.Sources[i].Locales = resolvePath(base, sf.Sources[i].Locales)
		}
	}

	return &sf, nil
}

func decodeSources(path string, data []byte, out interface{}) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
