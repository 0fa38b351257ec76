// Package config loads the fontmerge tool configuration and the sources
// manifest that declares which font trees participate in a merge.
//
// Tool settings come from an optional fontmerge.yaml resolved from the
// working directory or the fontmerge home, with FONTMERGE_* environment
// variables taking precedence. The sources manifest is a separate,
// schema-validated file loaded with LoadSources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/typevault/fontmerge/pkg/scanner"
)

// Config holds all tool settings for fontmerge.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Scan   ScanConfig   `mapstructure:"scan"`
}

// OutputConfig controls where merge results are written.
type OutputConfig struct {
	Dir         string `mapstructure:"dir"`
	ManifestDir string `mapstructure:"manifest_dir"`
	Format      string `mapstructure:"format"`
	Checksums   bool   `mapstructure:"checksums"`
}

// GetOutputConfig returns output configuration.
func (c *Config) GetOutputConfig() OutputConfig { return c.Output }

// ScanConfig controls how source trees are walked and parsed.
type ScanConfig struct {
	Workers        int      `mapstructure:"workers"`
	Extensions     []string `mapstructure:"extensions"`
	UseIgnoreFiles bool     `mapstructure:"use_ignore_files"`
}

// GetScanConfig returns scan configuration.
func (c *Config) GetScanConfig() ScanConfig { return c.Scan }

var defaultConfig = Config{
	Output: OutputConfig{
		Dir:         "merged",
		ManifestDir: "manifest",
		Format:      "yaml",
		Checksums:   false,
	},
	Scan: ScanConfig{
		Workers:        scanner.DefaultWorkers,
		Extensions:     scanner.DefaultExtensions,
		UseIgnoreFiles: true,
	},
}

// DefaultConfig returns a copy of the built-in defaults.
func DefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}

// LoadConfig loads configuration from fontmerge.yaml and the environment.
// A missing config file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("output.dir", defaultConfig.Output.Dir)
	v.SetDefault("output.manifest_dir", defaultConfig.Output.ManifestDir)
	v.SetDefault("output.format", defaultConfig.Output.Format)
	v.SetDefault("output.checksums", defaultConfig.Output.Checksums)
	v.SetDefault("scan.workers", defaultConfig.Scan.Workers)
	v.SetDefault("scan.extensions", defaultConfig.Scan.Extensions)
	v.SetDefault("scan.use_ignore_files", defaultConfig.Scan.UseIgnoreFiles)

	v.SetConfigName("fontmerge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := GetFontmergeHome(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("FONTMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &cfg, nil
}

// GetFontmergeHome returns the fontmerge home directory.
func GetFontmergeHome() (string, error) {
	// Check environment variable first
	if home := os.Getenv("FONTMERGE_HOME"); home != "" {
		return home, nil
	}

	// Use standard dev tool convention: ~/.fontmerge
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".fontmerge"), nil
}

// EnsureFontmergeHome creates the fontmerge home directory if it doesn't exist.
func EnsureFontmergeHome() (string, error) {
	homeDir, err := GetFontmergeHome()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(homeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create fontmerge home directory: %v", err)
	}

	return homeDir, nil
}
