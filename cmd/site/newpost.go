package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	site "github.com/richeterre/richeterre.github.io"
	"github.com/richeterre/richeterre.github.io/scaffold"
)

func newNewPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-post <title>",
		Short: "Create a dated draft post from the scaffold template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := site.ConfigFromEnv()
			title := strings.Join(args, " ")
			path, err := scaffold.NewPost(cfg.ContentDir, title, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
}
