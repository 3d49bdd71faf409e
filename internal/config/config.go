package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"repair_desk/internal/retry"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr    = ":5000"
	DefaultSpreadsheetID = "1IHyA7aRxGJekm31KIbuORpg4-dVY8XTOEbU6p8vK3y4"
	DefaultSheetName     = "設備報修"
)

type NotificationConfig struct {
	Enabled    bool          `yaml:"enabled"`
	URL        string        `yaml:"url"`
	Topic      string        `yaml:"topic"`
	Priority   string        `yaml:"priority"`
	BoardURL   string        `yaml:"boardURL"`
	MaxRetries int           `yaml:"maxRetries"`
	BaseDelay  time.Duration `yaml:"baseDelay"`
	MaxDelay   time.Duration `yaml:"maxDelay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Delivery returns the retry policy for notification delivery.
func (n NotificationConfig) Delivery() retry.Config {
	return retry.Config{
		MaxRetries: n.MaxRetries,
		BaseDelay:  n.BaseDelay,
		MaxDelay:   n.MaxDelay,
		Timeout:    n.Timeout,
	}
}

type Config struct {
	Env           string `yaml:"env"`
	LogLevel      string `yaml:"logLevel"`
	ListenAddr    string `yaml:"listenAddr"`
	SpreadsheetID string `yaml:"spreadsheetID"`
	SheetName     string `yaml:"sheetName"`
	// CredentialsFile is used when CredentialsJSON is empty.
	CredentialsFile string `yaml:"credentialsFile"`
	// CredentialsJSON is only ever read from the environment.
	CredentialsJSON string `yaml:"-"`

	Notifications NotificationConfig `yaml:"notifications"`
}

func Default() Config {
	return Config{
		Env:           "development",
		ListenAddr:    DefaultListenAddr,
		SpreadsheetID: DefaultSpreadsheetID,
		SheetName:     DefaultSheetName,
		Notifications: NotificationConfig{
			URL:        "https://ntfy.sh",
			Topic:      "repair-desk",
			Priority:   "default",
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
			Timeout:    10 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("LOGLEVEL"); v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + strings.TrimSpace(v)
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		c.SpreadsheetID = strings.TrimSpace(v)
	}
	if v := os.Getenv("WORKSHEET_NAME"); v != "" {
		c.SheetName = v
	}
	if v := os.Getenv("SERVICE_ACCOUNT_CREDENTIALS"); v != "" {
		c.CredentialsJSON = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.CredentialsFile = v
	}
	if v := os.Getenv("NTFY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Notifications.Enabled = b
		}
	}
	if v := os.Getenv("NTFY_URL"); v != "" {
		c.Notifications.URL = v
	}
	if v := os.Getenv("NTFY_TOPIC"); v != "" {
		c.Notifications.Topic = v
	}
	if v := os.Getenv("NTFY_PRIORITY"); v != "" {
		c.Notifications.Priority = v
	}
	if v := os.Getenv("NTFY_BOARD_URL"); v != "" {
		c.Notifications.BoardURL = v
	}
}

// Production reports whether ENV is production.
func (c Config) Production() bool {
	return c.Env == "production"
}

// HasCredentials reports whether any Google credential source is configured.
func (c Config) HasCredentials() bool {
	return c.CredentialsJSON != "" || c.CredentialsFile != ""
}

// Validate checks settings that would stop the server from listening.
// Missing credentials are not an error: the datastore starts unavailable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("config: listenAddr is required")
	}
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		return errors.New("config: spreadsheetID is required")
	}
	if c.SheetName == "" {
		return errors.New("config: sheetName is required")
	}
	if c.Notifications.Enabled && (c.Notifications.URL == "" || c.Notifications.Topic == "") {
		return errors.New("config: notifications need url and topic when enabled")
	}
	return nil
}
