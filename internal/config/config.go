package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override secrets in the config file
const (
	EnvVLCPassword   = "VLC_PASSWORD"
	EnvApplicationID = "DISCORD_APPLICATION_ID"
)

// Config represents the application configuration
type Config struct {
	VLC     VLCConfig     `toml:"vlc"`
	Discord DiscordConfig `toml:"discord"`
	Poll    PollConfig    `toml:"poll"`
	History HistoryConfig `toml:"history"`
	Status  StatusConfig  `toml:"status"`
	Logging LoggingConfig `toml:"logging"`
}

// VLCConfig describes how to reach (and optionally start) VLC
type VLCConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	Password            string `toml:"password"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	ReadyTimeoutSeconds int    `toml:"ready_timeout_seconds"`
	Launch              bool   `toml:"launch"`
	ExecutablePath      string `toml:"executable_path"`
	Playlist            string `toml:"playlist"`
	Shuffle             bool   `toml:"shuffle"`
	Loop                bool   `toml:"loop"`
}

// DiscordConfig contains Discord Rich Presence configuration
type DiscordConfig struct {
	Enabled       bool   `toml:"enabled"`
	ApplicationID string `toml:"application_id"`
}

// PollConfig tunes the poll loop and the seek detector
type PollConfig struct {
	IntervalMs       int `toml:"interval_ms"`
	DriftToleranceMs int `toml:"drift_tolerance_ms"`
}

// HistoryConfig contains the play history journal configuration
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// StatusConfig contains the local status endpoint configuration
type StatusConfig struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    string `toml:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		VLC: VLCConfig{
			Host:                "localhost",
			Port:                3103,
			Password:            "",
			TimeoutSeconds:      5,
			ReadyTimeoutSeconds: 10,
			Launch:              false,
			ExecutablePath:      defaultVLCPath(),
			Playlist:            "Minecraft OST.xspf",
			Shuffle:             true,
			Loop:                true,
		},
		Discord: DiscordConfig{
			Enabled:       true,
			ApplicationID: "1350909681681436692",
		},
		Poll: PollConfig{
			IntervalMs:       1000,
			DriftToleranceMs: 1000,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "./history.db",
		},
		Status: StatusConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "8089",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a TOML file, creating it with defaults
// when missing. Secrets from the environment (or a .env file next to the
// working directory) take precedence over the file.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := DefaultConfig().SaveToFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", err)
		}
	}
	return loadExisting(configPath)
}

// loadExisting parses configPath over the defaults. Unlike LoadConfig it
// never creates the file, so a missing file is an error.
func loadExisting(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := LoadEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadEnv loads a dotenv file if it exists. Variables already set in the
// process environment win.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides secrets with environment variables when set
func (c *Config) ApplyEnv() {
	if password := os.Getenv(EnvVLCPassword); password != "" {
		c.VLC.Password = password
	}
	if appID := os.Getenv(EnvApplicationID); appID != "" {
		c.Discord.ApplicationID = appID
	}
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	header := `# vlcpresence configuration
# Mirrors what VLC is playing onto Discord Rich Presence.
# Secrets can also be set through VLC_PASSWORD and DISCORD_APPLICATION_ID.

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.VLC.Host == "" {
		return fmt.Errorf("vlc host cannot be empty")
	}
	if c.VLC.Port < 1 || c.VLC.Port > 65535 {
		return fmt.Errorf("vlc port must be between 1 and 65535")
	}
	if c.VLC.TimeoutSeconds < 1 {
		return fmt.Errorf("vlc timeout must be at least 1 second")
	}
	if c.VLC.ReadyTimeoutSeconds < 0 {
		return fmt.Errorf("vlc ready timeout cannot be negative")
	}
	if c.VLC.Launch && c.VLC.ExecutablePath == "" {
		return fmt.Errorf("vlc executable path is required when launch is enabled")
	}

	if c.Discord.Enabled && c.Discord.ApplicationID == "" {
		return fmt.Errorf("discord application id cannot be empty")
	}

	if c.Poll.IntervalMs < 100 {
		return fmt.Errorf("poll interval must be at least 100ms")
	}
	if c.Poll.DriftToleranceMs < 1 {
		return fmt.Errorf("drift tolerance must be positive")
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history path cannot be empty")
	}

	if c.Status.Enabled && c.Status.Port == "" {
		return fmt.Errorf("status port cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}

// GetStatusAddress returns the status endpoint listen address
func (c *Config) GetStatusAddress() string {
	return c.Status.Host + ":" + c.Status.Port
}
