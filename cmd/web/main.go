package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	handlers "github.com/de-tools/report-hub/pkg/handlers/report"
	"github.com/de-tools/report-hub/pkg/server"
	"github.com/de-tools/report-hub/pkg/services/config"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/services/report/cashflow"
	"github.com/de-tools/report-hub/pkg/services/report/customervisit"
	"github.com/de-tools/report-hub/pkg/services/report/servicesales"
	"github.com/de-tools/report-hub/pkg/services/report/stockout"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	settingsPath string
	profileName  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report hub web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.reporthub.ini", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the connection profiles file (default is $HOME/.reporthub.ini)")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to the report settings file, defaults apply when omitted")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "",
		"Connection profile to serve reports for")

	_ = rootCmd.MarkFlagRequired("profile")

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

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", profileName, err)
	}

	settings := report.DefaultSettings()
	if settingsPath != "" {
		loaded, err := report.LoadSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = *loaded
	}
	if profile.Currency != "" {
		settings.Currency = profile.Currency
	}

	reports := report.NewRegistry()
	factories := map[string]report.ControllerFactory{
		"customer-visit": customervisit.ControllerFactory,
		"service-sales":  servicesales.ControllerFactory,
		"stock-out":      stockout.ControllerFactory,
		"cash-flow":      cashflow.ControllerFactory,
	}
	for name, factory := range factories {
		if err := reports.Register(name, factory); err != nil {
			return fmt.Errorf("failed to register report %q: %w", name, err)
		}
	}

	fetcher := client.New(profile)
	deps := report.Dependencies{Fetcher: fetcher, Profile: profile}

	controllers := make(map[string]report.Controller, len(factories))
	for _, name := range reports.ListReports() {
		ctrl, err := reports.Create(name, deps)
		if err != nil {
			return fmt.Errorf("failed to create report %q: %w", name, err)
		}
		controllers[name] = ctrl
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Serving profile `%s` with reports: %v", profile, reports.ListReports())

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports: handlers.NewHandler(controllers, settings, fetcher),
		},
	})

	return webAPI.Start()
}
