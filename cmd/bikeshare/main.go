package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jusunglee/bikeshare-go/internal/app"
	"github.com/jusunglee/bikeshare-go/internal/config"
	"github.com/jusunglee/bikeshare-go/internal/prompt"
	"github.com/jusunglee/bikeshare-go/internal/render"
	"github.com/jusunglee/bikeshare-go/pkg/bikeshare"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.FromEnv("warn")).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bikeshare",
		Short: "Explore US bikeshare trip data",
		Long: `An interactive tool for exploring bikeshare trips in Chicago, New York City
and Washington. Pick a city, month and day of week, and it prints the most
frequent travel times, popular stations, trip durations and user statistics.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, settings)
		},
	}

	cmd.Flags().StringVar(&settings.DataDir, "data-dir", settings.DataDir, "Directory holding the city CSV files")
	cmd.Flags().StringVar(&settings.CatalogFile, "catalog", settings.CatalogFile, "YAML file mapping cities to CSV files")
	cmd.Flags().StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "Log level (debug, info, warn, error)")
	return cmd
}

func run(cmd *cobra.Command, settings config.Settings) error {
	if err := config.InitLogger(settings.LogLevel); err != nil {
		log.Errorf("invalid log level %q: %v", settings.LogLevel, err)
		return err
	}

	client, err := bikeshare.NewLocal(bikeshare.Config{
		DataDir:     settings.DataDir,
		CatalogFile: settings.CatalogFile,
	})
	if err != nil {
		log.WithError(err).Error("failed to create bikeshare client")
		return err
	}

	out := cmd.OutOrStdout()
	a := app.New(
		client,
		prompt.New(cmd.InOrStdin(), out),
		render.NewPrinter(out, render.DefaultDisplayConfig()),
	)
	if err := a.Run(cmd.Context()); err != nil {
		log.WithError(err).Error("explore session failed")
		return err
	}
	return nil
}
