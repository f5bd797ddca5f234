package main

import (
	"fmt"
	"os"

	"apgbuilders/internal/dashboard"
	"apgbuilders/internal/database"
	"apgbuilders/internal/httpx"
	"apgbuilders/internal/logger"
	"apgbuilders/internal/report"
	"apgbuilders/internal/repository"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the per-site summary to a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			if format != dashboard.FormatCSV && format != dashboard.FormatXLSX {
				return fmt.Errorf("unsupported format %q (want csv or xlsx)", format)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg)
			if err != nil {
				return err
			}

			snap, err := dashboard.Load(cmd.Context(), repository.New(db))
			if err != nil {
				return err
			}

			body, _, err := dashboard.Render(format, snap)
			if err != nil {
				return err
			}

			if out == "" {
				out = report.ExportFilename(cfg.ExportFilePrefix, httpx.Today(), format)
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			logger.Log.Info().Str("file", out).Int("sites", len(snap.Sites)).Msg("summary exported")
			return nil
		},
	}

	cmd.Flags().String("format", dashboard.FormatCSV, "export format: csv or xlsx")
	cmd.Flags().String("out", "", "output file (default <prefix>-<date>.<format>)")
	return cmd
}
