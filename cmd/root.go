/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/typevault/fontmerge/internal/ops"
	"github.com/typevault/fontmerge/pkg/buildinfo"
	"github.com/typevault/fontmerge/pkg/exitcode"
	"github.com/typevault/fontmerge/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fontmerge",
		Short: "Merge font collections from multiple sources without duplicates",
		Long: `Fontmerge scans font source directories, detects families offered by more
than one source, resolves each clash by font version, and assembles a single
merged set under canonical file names.

Examples:
   fontmerge scan                # Inventory fonts declared in sources.yaml
   fontmerge clash               # Report families contended between sources
   fontmerge merge               # Build the merged set and its manifests
   fontmerge merge --dry-run     # Plan a merge without writing anything`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("fontmerge {{.Version}}\n")

	// Grouped help by command group (Pipeline → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Pipeline Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupPipeline) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(scanCmd)
	cmd.AddCommand(clashCmd)
	cmd.AddCommand(mergeCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "fontmerge",
	}

	if err := logger.Initialize(config); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
