package main

import (
	"fmt"

	"github.com/spf13/cobra"

	site "github.com/richeterre/richeterre.github.io"
)

func newBuildCmd() *cobra.Command {
	var contentDir, outputDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := site.ConfigFromEnv()
			if contentDir != "" {
				cfg.ContentDir = contentDir
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			res, err := site.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printReport(cmd, res.Report)
			if res.Report.HasErrors() {
				return fmt.Errorf("build failed with %d error(s)", len(res.Report.Errors()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "built %d documents into %s\n", res.Collection.Len(), cfg.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&contentDir, "content", "", "content directory (overrides CONTENT_DIR)")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var contentDir string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate content without writing any output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := site.ConfigFromEnv()
			if contentDir != "" {
				cfg.ContentDir = contentDir
			}
			res, err := site.Check(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printReport(cmd, res.Report)
			if res.Report.HasErrors() {
				return fmt.Errorf("check failed with %d error(s)", len(res.Report.Errors()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documents ok\n", res.Collection.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&contentDir, "content", "", "content directory (overrides CONTENT_DIR)")
	return cmd
}

// printReport writes every collected issue, warnings included, to stderr.
func printReport(cmd *cobra.Command, report *site.BuildReport) {
	for _, issue := range report.Issues {
		fmt.Fprintln(cmd.ErrOrStderr(), issue.String())
	}
}
