// Command itemfetch is the command-line front end for the itemfetch client:
// fetch an item feed, validate a config file, or run a local mock items
// endpoint for development.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caldera-labs/itemfetch/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "itemfetch",
		Short:         "Fetch, cache, and summarize item feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFetchCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newMockCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
