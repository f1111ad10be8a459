package main

import (
	"os"

	"vlcpresence/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config.toml"

// appContext carries what every subcommand needs
type appContext struct {
	configPath string
	config     *config.Config
	logger     *logrus.Logger
}

func newRootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "vlcpresence",
		Short:         "Show what VLC is playing on Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfig"] == "true" {
				app.logger = newLogger(config.DefaultConfig().Logging)
				return nil
			}
			return app.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), app)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", defaultConfigPath, "Configuration file path")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newProbeCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

func (app *appContext) load() error {
	cfg, err := config.LoadConfig(app.configPath)
	if err != nil {
		return err
	}
	app.config = cfg
	app.logger = newLogger(cfg.Logging)
	return nil
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
