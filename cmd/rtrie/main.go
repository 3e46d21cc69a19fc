package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:   "rtrie",
		Short: "Serve or inspect the rtrie demo application",
		Long: `rtrie is a trie based HTTP router.

The demo application registers root middleware, a JSON API group
and a route table page. Settings come from RTRIE_* environment
variables, optionally loaded from .env files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "env files to load (default .env)")

	rootCmd.AddCommand(
		serveCmd(&envFiles),
		routesCmd(&envFiles),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
