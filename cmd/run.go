package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fedisum/summarybot/internal/app"
	"github.com/fedisum/summarybot/internal/config"
)

// newRunCmd creates the 'run' subcommand, the long-running bot loop.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Starts the summarize-and-comment loop",
		Long: `Polls the configured feed on an interval, summarizing new link posts
and commenting on each one at most once. Runs until interrupted.`,
		RunE: runBotCommand,
	}
}

func runBotCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper(), configPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize services: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run bot: %w", err)
	}
	a.Logger().Info("shutdown complete")
	return nil
}
