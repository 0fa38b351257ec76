/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/typevault/fontmerge/internal/ops"
	"github.com/typevault/fontmerge/pkg/ascii"
	"github.com/typevault/fontmerge/pkg/clash"
	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/manifest"
	"github.com/typevault/fontmerge/pkg/merge"
	"github.com/typevault/fontmerge/pkg/safeio"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Build the merged font set and its manifests",
	Long: `Merge scans all sources, resolves clashes by font version, and copies the
surviving files into the output directory under canonical names. Alongside
the fonts it writes a locale manifest (fonts.yml by default), family lists,
and a markdown report of every clash decision.

The output directory is recreated from scratch on every run. Use --dry-run
to see the plan without touching the filesystem.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("sources", "s", "", "Path to the sources manifest (default: sources.yaml|yml|toml)")
	mergeCmd.Flags().StringP("out", "o", "", "Merged output directory (default from config: merged)")
	mergeCmd.Flags().String("manifest-dir", "", "Manifest output directory (default from config: manifest)")
	mergeCmd.Flags().String("format", "", "Locale manifest format: yaml|json|xml (default from config: yaml)")
	mergeCmd.Flags().Bool("dry-run", false, "Plan the merge without writing anything")
	mergeCmd.Flags().Bool("checksums", false, "Record a SHA-256 digest of every copied file in the copy log")

	if err := ops.RegisterCommand("merge", ops.GroupPipeline, mergeCmd, "Build the merged font set and its manifests"); err != nil {
		logger.Error("Failed to register merge command", logger.Err(err))
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, sf, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	outDir := cfg.Output.Dir
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		outDir = v
	}
	manifestDir := cfg.Output.ManifestDir
	if v, _ := cmd.Flags().GetString("manifest-dir"); v != "" {
		manifestDir = v
	}
	formatStr := cfg.Output.Format
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		formatStr = v
	}
	format, err := manifest.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	checksums := cfg.Output.Checksums
	if cmd.Flags().Changed("checksums") {
		checksums, _ = cmd.Flags().GetBool("checksums")
	}

	locales, err := loadLocaleMaps(sf)
	if err != nil {
		return err
	}

	sources, err := scanAll(cmd.Context(), cfg, sf)
	if err != nil {
		return err
	}

	report := clash.Detect(sources)
	plan, err := merge.Build(report, sources)
	if err != nil {
		return err
	}

	results, err := merge.Execute(cmd.Context(), plan, sources, merge.ExecuteOptions{
		OutputDir: outDir,
		DryRun:    dryRun,
		Checksums: checksums,
	})
	if err != nil {
		return err
	}

	if dryRun {
		// Nothing is written on a dry run; the clash decisions go to stdout.
		md, err := manifest.RenderReport(manifest.ReportData{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			OutputDir:   outDir,
			DryRun:      true,
			Stats:       plan.Stats,
			Decisions:   plan.Decisions,
			Copied:      len(results),
		})
		if err != nil {
			return err
		}
		cmd.Print(md)
	} else {
		data := manifest.Build(sources, plan, locales)
		if err := writeManifests(manifestDir, outDir, format, data, plan, results); err != nil {
			return err
		}
	}

	printMergeSummary(cmd, outDir, report, plan, results, dryRun)
	return nil
}

// writeManifests renders every merge artifact into manifestDir: the locale
// manifest in the requested format, the family lists, the markdown clash
// report, and the copy log.
func writeManifests(manifestDir, outDir string, format manifest.OutputFormat, data manifest.Data, plan *merge.Plan, results []merge.CopyResult) error {
	if err := safeio.EnsureDir(manifestDir); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}

	formatter := manifest.NewFormatter(format)
	rendered, err := formatter.Render(data)
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(filepath.Join(manifestDir, formatter.Filename()), rendered); err != nil {
		return fmt.Errorf("write locale manifest: %w", err)
	}

	full, err := manifest.FamiliesJSON(data, false)
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(filepath.Join(manifestDir, "families.json"), full); err != nil {
		return fmt.Errorf("write families.json: %w", err)
	}
	compact, err := manifest.FamiliesJSON(data, true)
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(filepath.Join(manifestDir, "families.min.json"), compact); err != nil {
		return fmt.Errorf("write families.min.json: %w", err)
	}

	md, err := manifest.RenderReport(manifest.ReportData{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		OutputDir:   outDir,
		Stats:       plan.Stats,
		Decisions:   plan.Decisions,
		Copied:      len(results),
	})
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(filepath.Join(manifestDir, "merge-report.md"), []byte(md)); err != nil {
		return fmt.Errorf("write merge report: %w", err)
	}

	copyLog, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode copy log: %w", err)
	}
	if err := safeio.WriteFilePreservePerms(filepath.Join(manifestDir, "copy-log.yaml"), copyLog); err != nil {
		return fmt.Errorf("write copy log: %w", err)
	}

	logger.Info("Wrote manifests",
		logger.String("dir", manifestDir),
		logger.String("format", string(format)))
	return nil
}

func printMergeSummary(cmd *cobra.Command, outDir string, report clash.Report, plan *merge.Plan, results []merge.CopyResult, dryRun bool) {
	rows := make([][]string, 0, len(plan.Stats))
	for _, st := range plan.Stats {
		rows = append(rows, []string{st.Source, strconv.Itoa(st.Copied), strconv.Itoa(st.Skipped)})
	}
	cmd.Print(ascii.Table([]string{"Source", "Copied", "Skipped"}, rows))

	header := fmt.Sprintf("Merged %d files into %s", len(results), outDir)
	if dryRun {
		header = fmt.Sprintf("Dry run: %d files would land in %s", len(results), outDir)
	}
	cmd.Print(ascii.Box([]string{
		header,
		fmt.Sprintf("Clashing families: %d (%d contended pairs)", len(report), report.PairCount()),
	}))
}
