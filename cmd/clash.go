/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/typevault/fontmerge/internal/ops"
	"github.com/typevault/fontmerge/pkg/ascii"
	"github.com/typevault/fontmerge/pkg/clash"
	"github.com/typevault/fontmerge/pkg/exitcode"
	"github.com/typevault/fontmerge/pkg/logger"
	"github.com/typevault/fontmerge/pkg/safeio"
)

// clashCmd represents the clash command
var clashCmd = &cobra.Command{
	Use:   "clash",
	Short: "Report families contended between sources",
	Long: `Clash scans all sources and reports every family that at least two
sources offer in the same subfamily, along with the file and version each
source brings to the contest.

The report is what merge resolves: for each contended pair the source with
the highest font version wins, earliest declared source on ties.`,
	RunE: runClash,
}

func init() {
	clashCmd.Flags().StringP("sources", "s", "", "Path to the sources manifest (default: sources.yaml|yml|toml)")
	clashCmd.Flags().String("format", "", "Emit the report as yaml or json instead of text")
	clashCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	clashCmd.Flags().Bool("fail-on-clash", false, "Exit with a validation error when clashes exist")

	if err := ops.RegisterCommand("clash", ops.GroupPipeline, clashCmd, "Report families contended between sources"); err != nil {
		logger.Error("Failed to register clash command", logger.Err(err))
	}
}

func runClash(cmd *cobra.Command, args []string) error {
	cfg, sf, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	sources, err := scanAll(cmd.Context(), cfg, sf)
	if err != nil {
		return err
	}

	report := clash.Detect(sources)
	logger.Info("Clash detection complete",
		logger.Int("families", len(report)),
		logger.Int("pairs", report.PairCount()))

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		printClashReport(cmd, report)
	} else {
		var out []byte
		switch format {
		case "yaml", "yml":
			out, err = yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
		case "json":
			out, err = json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			out = append(out, '\n')
		default:
			return fmt.Errorf("unsupported format %q (yaml|json)", format)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			cmd.Print(string(out))
		} else {
			if err := safeio.WriteFilePreservePerms(output, out); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			logger.Info("Wrote clash report", logger.String("path", output))
		}
	}

	failOnClash, _ := cmd.Flags().GetBool("fail-on-clash")
	if failOnClash && len(report) > 0 {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}

func printClashReport(cmd *cobra.Command, report clash.Report) {
	if len(report) == 0 {
		cmd.Println("No clashes detected.")
		return
	}

	for _, fam := range report {
		cmd.Println()
		cmd.Printf("Family: %s\n", fam.Family)

		rows := make([][]string, 0)
		for _, sub := range fam.Subfamilies {
			for _, se := range sub.Sources {
				for _, e := range se.Entries {
					version := e.Version
					if version == "" {
						version = "-"
					}
					rows = append(rows, []string{sub.Subfamily, se.Source, e.Path, version})
				}
			}
		}
		cmd.Print(ascii.Table([]string{"Subfamily", "Source", "File", "Version"}, rows))
	}

	cmd.Println()
	cmd.Printf("%d clashing families, %d contended pairs\n", len(report), report.PairCount())
}
