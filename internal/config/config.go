package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/fittrack/internal/timer"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Client    ClientConfig    `yaml:"client"`
	Timer     timer.Config    `yaml:"timer"`
	Voice     VoiceConfig     `yaml:"voice"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
}

type AuthConfig struct {
	APIKey      string `yaml:"api_key"`
	APILogin    string `yaml:"api_login"`
	DevIdentity bool   `yaml:"dev_identity"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ClientConfig configures the terminal client and the remote MCP mode.
type ClientConfig struct {
	ServerURL  string `yaml:"server_url"`
	APIKey     string `yaml:"api_key"`
	LogFile    string `yaml:"log_file"`
	StateDir   string `yaml:"state_dir"`
	WeeklyGoal int    `yaml:"weekly_goal"`
}

// VoiceConfig names an external speech-to-text program that prints one
// transcript per line. An empty command disables voice input.
type VoiceConfig struct {
	Command []string `yaml:"command"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads the server config from a YAML file, then applies environment
// variable overrides. Env vars use the prefix FITTRACK_ and underscore-separated paths:
//
//	FITTRACK_SERVER_HOST, FITTRACK_SERVER_PORT,
//	FITTRACK_DB_HOST, FITTRACK_DB_PORT, FITTRACK_DB_NAME,
//	FITTRACK_DB_USER, FITTRACK_DB_PASSWORD, FITTRACK_DB_SSLMODE, FITTRACK_DB_MAX_CONNS,
//	FITTRACK_AUTH_API_KEY, FITTRACK_AUTH_API_LOGIN,
//	FITTRACK_TAILSCALE_ENABLED, FITTRACK_TAILSCALE_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadClient reads the client config. A missing file is not an error; the
// client then runs on defaults and FITTRACK_CLIENT_* overrides:
//
//	FITTRACK_CLIENT_SERVER_URL, FITTRACK_CLIENT_API_KEY,
//	FITTRACK_CLIENT_LOG_FILE, FITTRACK_CLIENT_STATE_DIR,
//	FITTRACK_VOICE_COMMAND (split on whitespace)
func LoadClient(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validateClient(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITTRACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITTRACK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITTRACK_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FITTRACK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FITTRACK_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FITTRACK_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FITTRACK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FITTRACK_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FITTRACK_DB_MAX_CONNS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.Database.MaxConns = int32(n)
		}
	}
	if v := os.Getenv("FITTRACK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("FITTRACK_AUTH_API_LOGIN"); v != "" {
		cfg.Auth.APILogin = v
	}
	if v := os.Getenv("FITTRACK_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("FITTRACK_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("FITTRACK_CLIENT_SERVER_URL"); v != "" {
		cfg.Client.ServerURL = v
	}
	if v := os.Getenv("FITTRACK_CLIENT_API_KEY"); v != "" {
		cfg.Client.APIKey = v
	}
	if v := os.Getenv("FITTRACK_CLIENT_LOG_FILE"); v != "" {
		cfg.Client.LogFile = v
	}
	if v := os.Getenv("FITTRACK_CLIENT_STATE_DIR"); v != "" {
		cfg.Client.StateDir = v
	}
	if v := os.Getenv("FITTRACK_VOICE_COMMAND"); v != "" {
		cfg.Voice.Command = strings.Fields(v)
	}
}

func (c *Config) applyDefaults() {
	if c.Timer == (timer.Config{}) {
		c.Timer = timer.DefaultConfig()
	}
	if c.Client.WeeklyGoal == 0 {
		c.Client.WeeklyGoal = 5
	}
	if c.Client.StateDir == "" {
		c.Client.StateDir = defaultStateDir()
	}
	if c.Client.LogFile == "" {
		c.Client.LogFile = filepath.Join(c.Client.StateDir, "fittrack.log")
	}
	if c.Tailscale.Hostname == "" {
		c.Tailscale.Hostname = "fittrack"
	}
	if c.Tailscale.StateDir == "" {
		c.Tailscale.StateDir = filepath.Join(c.Client.StateDir, "tsnet")
	}
}

// defaultStateDir is $XDG_STATE_HOME/fittrack, falling back to
// ~/.local/state/fittrack.
func defaultStateDir() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "fittrack")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "fittrack")
	}
	return filepath.Join(os.TempDir(), "fittrack")
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("database.max_conns must not be negative")
	}
	if c.Auth.APIKey == "" && !c.Tailscale.Enabled && !c.Auth.DevIdentity {
		return fmt.Errorf("auth.api_key is required unless tailscale or dev_identity is enabled")
	}
	if c.Client.WeeklyGoal < 1 {
		return fmt.Errorf("client.weekly_goal must be positive")
	}
	return nil
}

func (c *Config) validateClient() error {
	if c.Client.ServerURL == "" {
		return fmt.Errorf("client.server_url is required")
	}
	if c.Client.WeeklyGoal < 1 {
		return fmt.Errorf("client.weekly_goal must be positive")
	}
	if err := c.Timer.Validate(); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	return nil
}
