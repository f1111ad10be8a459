package main

import (
	"fmt"
	"os"

	"vlcpresence/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *appContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with default values",
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(app.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", app.configPath)
			}
			if err := config.DefaultConfig().SaveToFile(app.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration file at: %s\n", app.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (VLC at %s:%d)\n", app.configPath, app.config.VLC.Host, app.config.VLC.Port)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, validateCmd)
	return configCmd
}
