package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipe-box/internal/app"
	"recipe-box/internal/config"
	applog "recipe-box/internal/logger"
)

var (
	// Global flags
	backend string
	verbose bool

	cfg         *config.Config
	logger      *zap.Logger
	application *app.App
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recipe-box",
	Short: "Recipes, meal plans and shopping lists from the terminal",
	Long: `recipe-box keeps a recipe collection, a weekly meal plan and a shopping list.

State is stored in the backend selected by STORAGE_BACKEND (memory, file, sqlite,
redis or mongo) and shared with the Telegram bot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		opts := []config.Option{config.WithStorageBackend(backend)}
		if verbose {
			opts = append(opts, config.WithLogLevel("debug"))
		}
		cfg, err = config.NewFromEnv(opts...)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err = applog.New("recipe-box", cfg.LogLevel, cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		application, err = app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			if err := application.Close(); err != nil {
				logger.Warn("failed to close storage", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend (overrides STORAGE_BACKEND)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(chaosCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
