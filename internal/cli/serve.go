package cli

import (
	"context"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/infrastructure/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the notification intake and the websocket hub",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
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
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
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

	logger.Info("starting jobboard",
		zap.String("version", version),
		zap.String("notifier_mode", string(cfg.Notifier.Mode)),
	)
	return app.New(container).Serve(ctx)
}
