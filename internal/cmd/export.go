package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/config"
	"github.com/labhacker007/joti-cli/internal/export"
)

// ExportCmd returns the `joti export` command, a headless version of the
// settings view export for scripting.
func ExportCmd() *cobra.Command {
	var (
		formatName string
		outPath    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the shared watchlist to CSV or JSON",
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}
			baseURL := cfg.ServerURL
			if baseURL == "" {
				baseURL = api.DefaultBaseURL
			}
			client := api.NewClient(baseURL, cfg.Token)

			keywords, err := client.ListKeywords()
			if err != nil {
				return fmt.Errorf("list keywords: %w", err)
			}

			if outPath == "-" {
				return export.WriteKeywords(c.OutOrStdout(), format, keywords)
			}

			path := outPath
			if path == "" {
				path = export.Filename(format, time.Now())
			}
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer file.Close()
			if err := export.WriteKeywords(file, format, keywords); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(c.OutOrStdout(), "exported %d keywords to %s\n", len(keywords), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "csv", "export format: csv or json")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default timestamped file, - for stdout)")
	return cmd
}
