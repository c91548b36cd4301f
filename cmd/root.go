package cmd

import (
	"fmt"
	"os"

	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/pkg/clockify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "clockify-timeline",
	Short: "Timeline and summary API on top of Clockify time entries",
	Long: `clockify-timeline fetches Clockify time entries for a date range, groups them by day
and project, merges sessions separated by at most five minutes and serves the result
as JSON. Running it without a subcommand starts the HTTP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
	RunE:              runServe,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath,
		"Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error); defaults to LOG_LEVEL or info")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(projectsCmd)
}

func configureLogging(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	logrusLevel, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(logrusLevel)

	switch logFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}
	return nil
}

func loadClient() (*clockify.ClientImpl, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return clockify.NewClient(cfg.Clockify)
}
