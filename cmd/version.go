/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/typevault/fontmerge/internal/ops"
	"github.com/typevault/fontmerge/pkg/buildinfo"
	"github.com/typevault/fontmerge/pkg/logger"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fontmerge version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show detailed build information")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")

	if err := ops.RegisterCommand("version", ops.GroupSupport, versionCmd, "Show fontmerge version information"); err != nil {
		logger.Error("Failed to register version command", logger.Err(err))
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()
	version := buildinfo.BinaryVersion

	if jsonOutput {
		versionInfo := map[string]interface{}{
			"version":   version,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		if extended {
			versionInfo["moduleVersion"] = buildinfo.ModuleVersion()
			versionInfo["vcsRevision"] = buildinfo.VCSRevision()
		}
		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		fmt.Fprintln(out, string(jsonData))
		return nil
	}

	if extended {
		fmt.Fprintf(out, "fontmerge %s\n", version)
		fmt.Fprintf(out, "  go:       %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		if mv := buildinfo.ModuleVersion(); mv != "" {
			fmt.Fprintf(out, "  module:   %s\n", mv)
		}
		if rev := buildinfo.VCSRevision(); rev != "" {
			fmt.Fprintf(out, "  revision: %s\n", rev)
		}
		return nil
	}

	fmt.Fprintf(out, "fontmerge %s\n", version)
	return nil
}
