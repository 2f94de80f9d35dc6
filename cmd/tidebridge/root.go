package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tidebridge",
	Short: "Tidebridge exposes the Tidecloud management API as MCP tools",
	Long: `Tidebridge bridges the Tidecloud management API into the Model Context
Protocol, so AI agents can inspect organizations, manage services, and
rotate API keys through schema-validated tools.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}
