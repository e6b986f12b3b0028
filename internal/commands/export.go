package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"conciliador/internal/config"
	"conciliador/internal/export"
	"conciliador/internal/export/sheets"
	"conciliador/internal/storage"
)

func newExportCommand() *cobra.Command {
	var (
		outPath  string
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all stored movements as CSV, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer repo.Close()

			movements, err := repo.ListMovements(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := export.WriteCSV(out, movements); err != nil {
				return err
			}

			if toSheets {
				cli, err := sheets.NewFromEnv(cmd.Context())
				if err != nil {
					return fmt.Errorf("sheets client: %w", err)
				}
				if err := cli.AppendMovements(cmd.Context(), movements); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d movements\n", len(movements))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "also append movements to the configured Google Sheet")

	return cmd
}
