package main

import (
	"github.com/spf13/cobra"

	site "github.com/richeterre/richeterre.github.io"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the published site locally, with optional draft preview",
		Long:  "serve runs a local preview server over the collection published by the last build.\nSet DRAFTS_PASSWORD and SESSION_SECRET to enable the /drafts/ login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := site.ConfigFromEnv()
			if addr != "" {
				cfg.Addr = addr
			}
			srv, err := site.NewServer(cfg)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
