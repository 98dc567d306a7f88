// Package cmd provides the CLI commands for graphmirror.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"graphmirror/internal/config"
	"graphmirror/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "graphmirror",
	Short: "Compute representative selections of an Azure tenant resource graph",
	Long: `graphmirror selects a small, representative set of resource instances
from a large tenant graph snapshot.

The selection preserves the proportional distribution of detected
architecture patterns and maximizes distinct resource-type coverage,
optionally boosting rare types.

Examples:
  graphmirror plan snapshot.yaml
  graphmirror plan --profile selection.hcl --format json snapshot.yaml
  graphmirror plan --boost 5.0 --trace snapshot.yaml`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.graphmirror.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("graphmirror version 0.1.0")
	},
}
