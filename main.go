package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shyamyadavji/weather/app"
	"github.com/shyamyadavji/weather/config"
	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/ui"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "weather",
		Short: "Interactive weather client",
		Long:  "Fetches current conditions, forecasts and astronomy data for a city and answers free-text weather questions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(probeCmd())
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	client, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	gateway := datasource.NewRateLimitedGateway(client,
		cfg.API.RateLimit.RPS, cfg.API.RateLimit.Burst)

	console := ui.NewConsole()
	core := app.New(gateway, console)
	return console.Run(ctx, core)
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Run the startup checks and exit",
		Long:  "Validates the credential format, the required assets and upstream connectivity without starting the interactive client.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All startup checks passed.")
			return nil
		},
	}
}

// setup loads configuration and runs the fatal startup checks. It returns a
// probed, unwrapped gateway client ready to be decorated.
func setup(ctx context.Context) (*datasource.WeatherAPIClient, *config.Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, &app.StartupError{Category: app.CategoryConfiguration, Err: err}
	}

	client := datasource.NewWeatherAPIClient(cfg.API.Key, cfg.API.Timeout)
	if cfg.API.BaseURL != "" {
		client.SetBaseURL(cfg.API.BaseURL)
	}

	if err := app.Startup(ctx, cfg.API.Key, cfg.Assets.Dir, client, cfg.API.ProbeLocation); err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
