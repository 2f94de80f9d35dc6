package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidecloud/tidebridge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tidebridge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tidebridge version %s\n", strings.TrimSpace(tidebridge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
