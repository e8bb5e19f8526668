package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
)

// DefaultConfigFile is picked up from the working directory when no
// configuration path is given.
const DefaultConfigFile = "vaultsync.yaml"

// Default locations, relative to the working directory.
const (
	DefaultSourcePath      = "obsidian-vault"
	DefaultDestinationPath = "content/posts"
	DefaultLedgerPath      = ".vaultsync/ledger.db"
	DefaultNotifySubject   = "vaultsync.runs"
	DefaultGitBranch       = "main"
	DefaultWatchDebounce   = 500 * time.Millisecond
)

// Config represents the application configuration
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Destination DestinationConfig `yaml:"destination"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Notify      NotifyConfig      `yaml:"notify"`
	Watch       WatchConfig       `yaml:"watch"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SourceConfig locates the vault.
type SourceConfig struct {
	Path string     `yaml:"path"`
	Git  *GitConfig `yaml:"git,omitempty"` // Optional remote the vault is checked out from
}

// GitConfig describes a vault kept in a Git repository.
type GitConfig struct {
	URL    string      `yaml:"url"`
	Branch string      `yaml:"branch,omitempty"`
	Pull   bool        `yaml:"pull"` // Clone or pull before every sync
	Auth   *AuthConfig `yaml:"auth,omitempty"`
	Retry  RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig controls retries of transient clone and fetch failures.
type RetryConfig struct {
	Backoff    string        `yaml:"backoff,omitempty"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial,omitempty"`
	Max        time.Duration `yaml:"max,omitempty"`
	MaxRetries int           `yaml:"max_retries,omitempty"` // Zero disables retries
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Type     string `yaml:"type"` // "none", "ssh", "token", "basic"
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

// DestinationConfig locates the site content directory.
type DestinationConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig controls the SQLite sync history.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig controls Prometheus metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node_exporter textfile collector target
}

// NotifyConfig controls run notifications over NATS.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"` // Full resync period; zero disables
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no file is present: the vault
// in ./obsidian-vault, posts written to ./content/posts.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Resolve loads configPath, or DefaultConfigFile when configPath is empty and
// that file exists, or falls back to Default.
func Resolve(configPath string) (*Config, error) {
	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			loadEnvFile()
			cfg := Default()
			return cfg, Validate(cfg)
		}
		configPath = DefaultConfigFile
	}
	return Load(configPath)
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, verrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, verrors.Wrap(err, verrors.CategoryConfig, verrors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	applyDefaults(&config)
	if err := Validate(&config); err != nil {
		return nil, err
	}
	normalize(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Source.Path == "" {
		config.Source.Path = DefaultSourcePath
	}
	if config.Source.Git != nil && config.Source.Git.Branch == "" {
		config.Source.Git.Branch = DefaultGitBranch
	}
	if config.Destination.Path == "" {
		config.Destination.Path = DefaultDestinationPath
	}
	if config.Ledger.Path == "" {
		config.Ledger.Path = DefaultLedgerPath
	}
	if config.Notify.Subject == "" {
		config.Notify.Subject = DefaultNotifySubject
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultWatchDebounce
	}
	if config.Logging.Level == "" {
		config.Logging.Level = string(LogLevelInfo)
	}
	if config.Logging.Format == "" {
		config.Logging.Format = string(LogFormatText)
	}
}

// normalize canonicalizes enum-like fields once they have been validated.
func normalize(config *Config) {
	config.Logging.Level = string(NormalizeLogLevel(config.Logging.Level))
	config.Logging.Format = string(NormalizeLogFormat(config.Logging.Format))
	if config.Source.Git != nil {
		config.Source.Git.Retry.Backoff = backoffNormalizer.Normalize(config.Source.Git.Retry.Backoff)
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Source: SourceConfig{
			Path: DefaultSourcePath,
			Git: &GitConfig{
				URL:    "https://github.com/example/obsidian-vault.git",
				Branch: DefaultGitBranch,
				Pull:   false,
				Auth: &AuthConfig{
					Type:  "token",
					Token: "${VAULT_GIT_TOKEN}",
				},
				Retry: RetryConfig{Backoff: "exponential", Initial: 2 * time.Second, Max: 30 * time.Second, MaxRetries: 2},
			},
		},
		Destination: DestinationConfig{Path: DefaultDestinationPath},
		Ledger:      LedgerConfig{Enabled: true, Path: DefaultLedgerPath},
		Notify:      NotifyConfig{Subject: DefaultNotifySubject},
		Watch:       WatchConfig{Debounce: DefaultWatchDebounce, Interval: 30 * time.Minute},
		Logging:     LoggingConfig{Level: string(LogLevelInfo), Format: string(LogFormatText)},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
