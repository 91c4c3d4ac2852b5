package cli

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/pkg/jwt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the matcher once for a posting and wait for delivery",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetString("job-id")
		var requirements *string
		if cmd.Flags().Changed("requirements") {
			r, _ := cmd.Flags().GetString("requirements")
			requirements = &r
		}
		return match(cmd.Context(), jobID, requirements)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a user (development helper)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetString("user-id")
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		tok, err := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn).GenerateAccessToken(userID)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(tokenCmd)

	matchCmd.Flags().String("job-id", "", "posting to match")
	matchCmd.Flags().String("requirements", "", "requirements text; defaults to the stored posting")
	_ = matchCmd.MarkFlagRequired("job-id")

	tokenCmd.Flags().String("user-id", "", "user the token is issued for")
	_ = tokenCmd.MarkFlagRequired("user-id")
}

func match(parent context.Context, jobID string, requirements *string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext(parent)
	defer stop()

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

	rep, err := container.Matcher.RunForJob(ctx, jobID, requirements)
	if err != nil {
		return err
	}
	logger.Info("match finished",
		zap.String("job_id", rep.JobID),
		zap.Strings("matched", rep.Matched),
		zap.Int("emitted", rep.Emitted),
		zap.Int("failed", rep.Failed),
	)
	return nil
}
