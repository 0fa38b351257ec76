/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/typevault/fontmerge/internal/ops"
	"github.com/typevault/fontmerge/pkg/ascii"
	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/safeio"
	"github.com/typevault/fontmerge/pkg/scanner"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Inventory font files and metadata across all sources",
	Long: `Scan walks every source declared in the sources manifest, parses the
name table of each font file, and reports the families, subfamilies, and
versions each source offers.

By default a summary table is printed. Use --format to emit the full
inventory as YAML or JSON for downstream tooling.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("sources", "s", "", "Path to the sources manifest (default: sources.yaml|yml|toml)")
	scanCmd.Flags().String("format", "", "Emit the full inventory (yaml|json) instead of the summary table")
	scanCmd.Flags().StringP("output", "o", "", "Write the inventory to a file instead of stdout")

	if err := ops.RegisterCommand("scan", ops.GroupPipeline, scanCmd, "Inventory font files and metadata across all sources"); err != nil {
		logger.Error("Failed to register scan command", logger.Err(err))
	}
}

// sourceInventory is the machine-readable scan result for one source.
type sourceInventory struct {
	Source   string              `json:"source" yaml:"source"`
	Root     string              `json:"root" yaml:"root"`
	Files    int                 `json:"files" yaml:"files"`
	Families scanner.FamilyIndex `json:"families" yaml:"families"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, sf, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	sources, err := scanAll(cmd.Context(), cfg, sf)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		printScanSummary(cmd, sources)
		return nil
	}

	inventory := make([]sourceInventory, 0, len(sources))
	for _, src := range sources {
		inventory = append(inventory, sourceInventory{
			Source:   src.Name,
			Root:     src.Root,
			Files:    len(src.FontFiles),
			Families: src.Families,
		})
	}

	var out []byte
	switch format {
	case "yaml", "yml":
		out, err = yaml.Marshal(inventory)
		if err != nil {
			return fmt.Errorf("encode inventory: %w", err)
		}
	case "json":
		out, err = json.MarshalIndent(inventory, "", "  ")
		if err != nil {
			return fmt.Errorf("encode inventory: %w", err)
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unsupported format %q (yaml|json)", format)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		cmd.Print(string(out))
		return nil
	}
	if err := safeio.WriteFilePreservePerms(output, out); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	logger.Info("Wrote scan inventory", logger.String("path", output))
	return nil
}

func printScanSummary(cmd *cobra.Command, sources []*scanner.Source) {
	rows := make([][]string, 0, len(sources))
	totalFiles, totalEntries := 0, 0
	for _, src := range sources {
		rows = append(rows, []string{
			src.Name,
			strconv.Itoa(len(src.FontFiles)),
			strconv.Itoa(len(src.Families)),
			strconv.Itoa(src.Families.EntryCount()),
		})
		totalFiles += len(src.FontFiles)
		totalEntries += src.Families.EntryCount()
	}

	cmd.Print(ascii.Table([]string{"Source", "Files", "Families", "Entries"}, rows))
	cmd.Printf("%d font files, %d entries across %d sources\n", totalFiles, totalEntries, len(sources))
}
