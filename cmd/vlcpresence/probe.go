package main

import (
	"encoding/json"
	"fmt"
	"time"

	"vlcpresence/internal/player"
	"vlcpresence/internal/vlc"

	"github.com/spf13/cobra"
)

func newProbeCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Fetch VLC status once and print the presence it would produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			source := vlc.NewClient(&app.config.VLC, app.logger)
			snap, err := source.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			engine := player.NewEngine(player.Options{
				DriftTolerance: time.Duration(app.config.Poll.DriftToleranceMs) * time.Millisecond,
			})
			class, payload := engine.Reconcile(snap, time.Now().UnixMilli())

			out, err := json.MarshalIndent(map[string]any{
				"snapshot":       snap,
				"classification": class.String(),
				"presence":       payload,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
