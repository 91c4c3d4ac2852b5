package cli

import (
	"context"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/infrastructure/messaging"
	"jobboard/internal/infrastructure/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Feed notification events from Kafka into the Notifier",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return consume(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}

func consume(parent context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext(parent)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Environment)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	container, err := app.NewContainer(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("cleanup", zap.Error(err))
		}
	}()

	consumer, err := messaging.NewConsumer(cfg.Kafka, container.Notifier, logger.Named("kafka"))
	if err != nil {
		return err
	}
	logger.Info("consuming notification events",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)
	return consumer.Run(ctx)
}
