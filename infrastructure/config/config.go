// Package config loads application settings from YAML and provider
// credentials from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
	"photo-analyzer-go/infrastructure/repository"
	"photo-analyzer-go/infrastructure/vision"
)

// PathEnvVar names an explicit config file that replaces the per-user file.
const PathEnvVar = "PHOTOANALYZER_CONFIG"

// Config is the full application configuration.
type Config struct {
	DefaultProvider string          `yaml:"default_provider"`
	Providers       ProvidersConfig `yaml:"providers"`
	Prompt          string          `yaml:"prompt"`
	Library         LibraryConfig   `yaml:"library"`
	Logging         LoggingConfig   `yaml:"logging"`
}

// ProvidersConfig groups the remote provider settings.
type ProvidersConfig struct {
	Primary   PrimaryConfig   `yaml:"primary"`
	Secondary SecondaryConfig `yaml:"secondary"`
}

// PrimaryConfig configures the chat-completions provider.
type PrimaryConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// SecondaryConfig configures the multipart describe provider.
type SecondaryConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LibraryConfig configures the recent images store.
type LibraryConfig struct {
	// MongoURI selects the MongoDB store; empty keeps entries in memory.
	MongoURI string `yaml:"mongo_uri"`
	Database string `yaml:"database"`
	Limit    int    `yaml:"limit"`
}

// LoggingConfig configures the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	primary := vision.DefaultOpenAIConfig()
	secondary := vision.DefaultImageDescriberConfig()
	return &Config{
		DefaultProvider: provider.Primary.String(),
		Providers: ProvidersConfig{
			Primary: PrimaryConfig{
				BaseURL:   primary.BaseURL,
				Model:     primary.Model,
				MaxTokens: primary.MaxTokens,
				Timeout:   primary.Timeout,
			},
			Secondary: SecondaryConfig{
				BaseURL: secondary.BaseURL,
				Timeout: secondary.Timeout,
			},
		},
		Library: LibraryConfig{
			Database: repository.DefaultMongoDBConfig().Database,
			Limit:    library.DefaultLimit,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Parse overlays YAML documents onto DefaultConfig in order.
// Keys absent from a later document keep their earlier values.
func Parse(docs ...[]byte) (*Config, error) {
	cfg := DefaultConfig()
	for i, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		if err := yaml.Unmarshal(doc, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config document %d: %w", i, err)
		}
	}
	return cfg, nil
}

// Load parses the embedded defaults and then the user file, if any.
// A missing user file is not an error.
func Load(defaults []byte, userPath string) (*Config, error) {
	var user []byte
	if userPath != "" {
		data, err := os.ReadFile(userPath)
		switch {
		case err == nil:
			user = data
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("No user config file", "path", userPath)
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", userPath, err)
		}
	}
	return Parse(defaults, user)
}

// UserConfigPath returns the config file path to overlay on the defaults.
// PHOTOANALYZER_CONFIG takes precedence over the per-user location.
func UserConfigPath() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "photoanalyzer", "config.yaml")
}

// LoadEnv loads .env files into the process environment.
// Missing or unreadable files are ignored.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
}

// Credentials reads the default credential of every provider from the
// environment. Unset variables yield empty credentials.
func Credentials(getenv func(string) string) map[provider.Provider]string {
	if getenv == nil {
		getenv = os.Getenv
	}
	creds := make(map[provider.Provider]string, len(provider.All))
	for _, p := range provider.All {
		creds[p] = strings.TrimSpace(getenv(p.EnvVar()))
	}
	return creds
}

// Provider returns the configured default provider, or Primary when the
// value is not recognized.
func (c *Config) Provider() provider.Provider {
	p, err := provider.Parse(c.DefaultProvider)
	if err != nil {
		return provider.Primary
	}
	return p
}

// OpenAI returns the primary client configuration.
func (c *Config) OpenAI() *vision.OpenAIConfig {
	cfg := vision.DefaultOpenAIConfig()
	if c.Providers.Primary.BaseURL != "" {
		cfg.BaseURL = c.Providers.Primary.BaseURL
	}
	if c.Providers.Primary.Model != "" {
		cfg.Model = c.Providers.Primary.Model
	}
	if c.Providers.Primary.MaxTokens > 0 {
		cfg.MaxTokens = c.Providers.Primary.MaxTokens
	}
	cfg.Timeout = c.Providers.Primary.Timeout
	if c.Prompt != "" {
		cfg.Prompt = c.Prompt
	}
	return cfg
}

// ImageDescriber returns the secondary client configuration.
func (c *Config) ImageDescriber() *vision.ImageDescriberConfig {
	cfg := vision.DefaultImageDescriberConfig()
	if c.Providers.Secondary.BaseURL != "" {
		cfg.BaseURL = c.Providers.Secondary.BaseURL
	}
	if c.Providers.Secondary.Timeout > 0 {
		cfg.Timeout = c.Providers.Secondary.Timeout
	}
	if c.Prompt != "" {
		cfg.Prompt = c.Prompt
	}
	return cfg
}

// MongoDB returns the repository connection settings, or nil when no URI
// is configured.
func (c *Config) MongoDB() *repository.MongoDBConfig {
	if c.Library.MongoURI == "" {
		return nil
	}
	cfg := repository.DefaultMongoDBConfig()
	cfg.URI = c.Library.MongoURI
	if c.Library.Database != "" {
		cfg.Database = c.Library.Database
	}
	return cfg
}

// LibraryLimit returns the number of recent images to keep listed.
func (c *Config) LibraryLimit() int {
	if c.Library.Limit <= 0 {
		return library.DefaultLimit
	}
	return c.Library.Limit
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
