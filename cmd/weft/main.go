package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Headless tooling for the Weft reactive core",
		Long: `Weft ships a fine-grained reactive engine and a virtual-tree
differ. This CLI drives both without a host application:

  • diff two vnode trees and print the patch frame
  • benchmark the reactive engine headlessly`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		diffCmd(),
		benchCmd(),
		versionCmd(),
	)

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cobra.OnInitialize(func() {
		if noColor, _ := rootCmd.PersistentFlags().GetBool("no-color"); noColor {
			errors.DisableColors()
		}
	})

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}
