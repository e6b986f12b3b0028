package commands

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"conciliador/internal/amqp"
	"conciliador/internal/config"
	"conciliador/internal/log"
)

func newEnqueueCommand() *cobra.Command {
	var bank string

	cmd := &cobra.Command{
		Use:   "enqueue [files...]",
		Short: "Publish ingest requests for the worker instead of processing locally",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, log.New(log.DefaultConfig()))
			if err != nil {
				return fmt.Errorf("connect AMQP: %w", err)
			}
			defer client.Close()

			for _, path := range args {
				abs, err := filepath.Abs(path)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", path, err)
				}
				msg := amqp.NewIngestRequestMessage(uuid.NewString(), abs, bank)
				if err := client.PublishIngestRequest(cmd.Context(), msg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s (run %s)\n", abs, msg.RunID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank dialect of the files (banregio, bbva)")
	_ = cmd.MarkFlagRequired("bank")

	return cmd
}
