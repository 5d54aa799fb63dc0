// Command assetd runs one instance of the asset cache fleet.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "assetd",
		Short:        "Tiered asset lookup service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSeedCmd())
	return root
}
