package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidecloud/tidebridge"
	"github.com/tidecloud/tidebridge/internal/presentation/tui"
	"golang.org/x/term"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the exposed tools and their arguments",
	Long:  `Prints the full tool catalog, including each tool's arguments, types and constraints.`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			plain = true
		}

		bridge, err := tidebridge.New()
		if err != nil {
			log.Fatalf("Error initializing tidebridge: %v", err)
		}

		if !plain {
			tui.PrintBanner()
		}

		out, err := tui.Render(tui.CatalogMarkdown(bridge.Tools()), plain)
		if err != nil {
			log.Fatalf("Error rendering catalog: %v", err)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().Bool("plain", false, "Print raw Markdown without styling")
}
