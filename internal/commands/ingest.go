package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"conciliador/internal/config"
	"conciliador/internal/dialect"
	"conciliador/internal/log"
	"conciliador/internal/services"
	"conciliador/internal/statement"
	"conciliador/internal/storage"
)

func newIngestCommand() *cobra.Command {
	var bank string

	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Parse statement files and load new movements into the store",
		Args:  cobra.MinimumNArgs(1),
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

			svc := services.NewIngestService(repo,
				statement.DefaultRegistry(),
				dialect.DefaultRegistry(),
				cfg.Currency, cfg.Account,
				log.New(log.DefaultConfig()))

			summaries, err := svc.IngestFiles(cmd.Context(), args, bank, cfg.IngestConcurrency)
			if err != nil {
				return err
			}

			for _, s := range summaries {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank dialect of the files (banregio, bbva)")
	_ = cmd.MarkFlagRequired("bank")

	return cmd
}
