package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidqa/shared/kafka"
	"vidqa/types"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var group string
	var fromBeginning bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow workflow events published to Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.KafkaEnabled() {
				return errors.New("events require KAFKA_BOOTSTRAP_SERVERS")
			}
			log, closer, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			handler := kafka.EventHandler{
				Process: func(_ context.Context, e types.Event) error {
					if ctx.flags.json {
						return writeJSON(cmd, e)
					}
					line := fmt.Sprintf("%s %-9s %-9s", e.At.Format("15:04:05"), e.Workflow, e.Outcome)
					if e.VideoID != "" {
						line += " " + e.VideoID
					}
					if e.Message != "" {
						line += " " + e.Message
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
					return nil
				},
			}

			consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:    cfg.KafkaBrokers,
				Topic:      cfg.KafkaTopic,
				GroupID:    group,
				FromOldest: fromBeginning,
				Handler:    handler,
				Logger:     log,
			})
			if err != nil {
				return fmt.Errorf("create kafka consumer: %w", err)
			}
			defer consumer.Close()

			if err := consumer.Start(cmd.Context()); err != nil {
				return err
			}
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "vidqa-events", "Consumer group id")
	cmd.Flags().BoolVar(&fromBeginning, "from-beginning", false, "Replay retained events")
	return cmd
}
