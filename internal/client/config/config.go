package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the profilespaces CLI.
//
// Units: RequestTimeout and ToastDuration are time.Duration values.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	APIKey         string        `env:"API_KEY"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	ToastDuration  time.Duration `env:"TOAST_DURATION"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
}

// Flags lists every command-line flag owned by the config loader, so other
// parsers (the command tree) can strip them with flagx.StripArgs.
var Flags = []string{
	"-a", "-k", "-d", "-t", "-l",
	"-c", "-config", "--config",
	"-env", "--env",
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DatabasePath = "profilespaces.db"
	c.RequestTimeout = 10 * time.Second
	c.ToastDuration = 3200 * time.Millisecond
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, then the JSON file, the .env file,
// the environment and finally the flags found in args (os.Args[1:]). Later
// sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: api_base_url is empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database_path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
