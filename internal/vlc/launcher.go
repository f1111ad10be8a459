package vlc

import (
	"fmt"
	"os/exec"
	"strconv"

	"vlcpresence/internal/config"

	"github.com/sirupsen/logrus"
)

// LaunchArgs builds the VLC command line enabling the HTTP interface
func LaunchArgs(cfg *config.VLCConfig) []string {
	args := []string{
		"--extraintf", "http",
		"--http-host", cfg.Host,
		"--http-port", strconv.Itoa(cfg.Port),
		"--http-password", cfg.Password,
		"--intf", "qt",
	}
	if cfg.Shuffle {
		args = append(args, "--random")
	}
	if cfg.Loop {
		args = append(args, "--loop")
	}
	if cfg.Playlist != "" {
		args = append(args, cfg.Playlist)
	}
	return args
}

// Launch starts VLC without waiting for it to exit
func Launch(cfg *config.VLCConfig, logger *logrus.Logger) (*exec.Cmd, error) {
	cmd := exec.Command(cfg.ExecutablePath, LaunchArgs(cfg)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn VLC: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"pid":      cmd.Process.Pid,
		"playlist": cfg.Playlist,
	}).Info("Spawned VLC")

	// Reap the process so it does not linger as a zombie
	go cmd.Wait()

	return cmd, nil
}
