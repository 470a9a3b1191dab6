package main

import (
	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/homeauctiondeals/gateway/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Home Auction Deals HTTP gateway",
	Long: `gateway serves the location autocomplete, the bounding-box property
search backed by PropMix and the enquiry form that appends leads to Google
Sheets. Configuration is read from the environment and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// bootstrap loads config and builds the process logger shared by every
// command.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
