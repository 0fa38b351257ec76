/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typevault/fontmerge/pkg/config"
	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/manifest"
	"github.com/typevault/fontmerge/pkg/scanner"
)

// loadPipelineConfig resolves tool configuration and the sources manifest
// for a pipeline command. The --sources flag overrides manifest discovery.
func loadPipelineConfig(cmd *cobra.Command) (*config.Config, *config.SourcesFile, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	explicit, _ := cmd.Flags().GetString("sources")
	path, err := config.FindSourcesFile(explicit)
	if err != nil {
		return nil, nil, err
	}

	sf, err := config.LoadSources(path)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("Loaded sources manifest",
		logger.String("path", path),
		logger.Int("sources", len(sf.Sources)))
	return cfg, sf, nil
}

// scanAll scans every declared source in declaration order.
func scanAll(ctx context.Context, cfg *config.Config, sf *config.SourcesFile) ([]*scanner.Source, error) {
	sources := make([]*scanner.Source, 0, len(sf.Sources))
	for _, sc := range sf.Sources {
		s := scanner.New(scanner.Options{
			Extensions:    cfg.Scan.Extensions,
			Include:       sc.Include,
			Exclude:       sc.Exclude,
			Workers:       cfg.Scan.Workers,
			UseIgnoreFile: cfg.Scan.UseIgnoreFiles,
		})

		src, err := s.ScanSource(ctx, sc.Name, sc.Dir)
		if err != nil {
			return nil, err
		}

		logger.Info("Scanned source",
			logger.String("source", src.Name),
			logger.Int("files", len(src.FontFiles)),
			logger.Int("families", len(src.Families)))
		sources = append(sources, src)
	}
	return sources, nil
}

// loadLocaleMaps loads the locale mapping declared by each source, keyed by
// source name. Sources without a locales file fall back to the default
// locale at manifest build time.
func loadLocaleMaps(sf *config.SourcesFile) (map[string]manifest.LocaleMap, error) {
	locales := make(map[string]manifest.LocaleMap)
	for _, sc := range sf.Sources {
		if sc.Locales == "" {
			continue
		}
		lm, err := manifest.LoadLocaleMap(sc.Locales)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", sc.Name, err)
		}
		locales[sc.Name] = lm
	}
	return locales, nil
}
