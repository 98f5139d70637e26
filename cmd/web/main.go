package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/milv-tools/rvu-atlas/pkg/server"
	"github.com/milv-tools/rvu-atlas/pkg/services/dashboard"
	"github.com/milv-tools/rvu-atlas/pkg/services/dataset"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the RVU dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "rvu-atlas.yaml",
		"Path to the dashboard configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := dashboard.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	reader, err := dashboard.NewSourceReader(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to create source reader: %w", err)
	}

	loader := dataset.NewLoader(
		dataset.WithLocation(loc),
		dataset.WithMaxExclusionRate(cfg.MaxExclusionRate),
	)

	ctrl := dashboard.NewController(loader, reader)

	// Load once at startup; a failure is not fatal, consumers can
	// trigger a refresh once the source is fixed.
	if _, err := ctrl.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial refresh failed, starting empty")
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Dashboard: ctrl,
		},
	})

	return api.Start()
}
