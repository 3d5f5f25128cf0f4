package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "site",
		Short:         "site - static site builder for the blog",
		Long:          "site turns markdown documents with front matter into a rendered static website.\nConfiguration comes from environment variables (SITE_NAME, SITE_URL, CONTENT_DIR, ...).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newNewPostCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the site version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "site %s\n", version)
		},
	})
	return root
}
