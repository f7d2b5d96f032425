// Package config provides CLI configuration management for the zoomchat command-line tool.
// It supports loading configuration from YAML files, .env files, environment variables,
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// LogFormat selects how diagnostic logs are rendered on stderr.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Default configuration values.
const (
	DefaultOutputFormat  = OutputFormatText
	DefaultLogFormat     = LogFormatConsole
	DefaultIndent        = "auto"
	DefaultCounterMode   = "scan"
	DefaultRedisAddress  = "localhost:6379"
	DefaultEventsChannel = "events.transcript.scanned"
	DefaultConfigDir     = ".zoomchat"
	DefaultConfigFile    = "config.yaml"
	DotEnvFile           = ".env"
)

// TranscriptConfig controls how transcripts are read.
type TranscriptConfig struct {
	// Indent selects the continuation prefix: auto, tab or spaces.
	Indent string `yaml:"indent" validate:"oneof=auto tab spaces"`

	// CounterMode selects whether the message total spans the scan or resets per file.
	CounterMode string `yaml:"counter_mode" validate:"oneof=scan file"`
}

// EventsConfig holds the Redis settings used to announce finished scans.
type EventsConfig struct {
	// Enabled turns on publishing of transcript.scanned events.
	Enabled bool `yaml:"enabled"`

	// Address is the Redis server (host:port).
	Address string `yaml:"address" validate:"omitempty,hostname_port"`

	// Password authenticates with Redis. Usually supplied through .env.
	Password string `yaml:"password,omitempty"`

	// DB is the Redis logical database.
	DB int `yaml:"db" validate:"min=0,max=15"`

	// Channel is the pub/sub channel events are published on.
	Channel string `yaml:"channel"`
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format" validate:"oneof=text json yaml"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// LogFormat selects console or JSON logs.
	LogFormat LogFormat `yaml:"log_format" validate:"oneof=console json"`

	// Transcript controls transcript parsing.
	Transcript TranscriptConfig `yaml:"transcript"`

	// MetricsTextfile, when set, receives the scan metrics in Prometheus
	// text format after every scan. Supports ~ for home directory expansion.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	// Events configures scan event publishing.
	Events EventsConfig `yaml:"events"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		OutputFormat: DefaultOutputFormat,
		LogFormat:    DefaultLogFormat,
		Transcript: TranscriptConfig{
			Indent:      DefaultIndent,
			CounterMode: DefaultCounterMode,
		},
		Events: EventsConfig{
			Address: DefaultRedisAddress,
			Channel: DefaultEventsChannel,
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $ZOOMCHAT_CONFIG_DIR if set, otherwise ~/.zoomchat
func ConfigDir() (string, error) {
	if dir := os.Getenv("ZOOMCHAT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.zoomchat/config.yaml or $ZOOMCHAT_CONFIG_DIR/config.yaml)
// 3. .env files in the working directory and the config directory
// 4. Environment variables (ZOOMCHAT_OUTPUT_FORMAT, ZOOMCHAT_DEBUG, ...)
//
// Variables already set in the environment win over .env entries.
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := loadDotEnv(DotEnvFile, filepath.Join(filepath.Dir(configPath), DotEnvFile)); err != nil {
		return nil, err
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads each existing .env file into the process environment.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Decoding over the defaults keeps every key the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("ZOOMCHAT_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("ZOOMCHAT_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("ZOOMCHAT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = LogFormat(v)
	}

	if v := os.Getenv("ZOOMCHAT_INDENT"); v != "" {
		cfg.Transcript.Indent = v
	}

	if v := os.Getenv("ZOOMCHAT_COUNTER_MODE"); v != "" {
		cfg.Transcript.CounterMode = v
	}

	if v := os.Getenv("ZOOMCHAT_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}

	// Event publishing environment variables.
	if v := os.Getenv("ZOOMCHAT_EVENTS_ENABLED"); v == "true" || v == "1" {
		cfg.Events.Enabled = true
	}

	if v := os.Getenv("ZOOMCHAT_REDIS_ADDRESS"); v != "" {
		cfg.Events.Address = v
	}

	if v := os.Getenv("ZOOMCHAT_REDIS_PASSWORD"); v != "" {
		cfg.Events.Password = v
	}

	if v := os.Getenv("ZOOMCHAT_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Events.DB = db
		}
	}

	if v := os.Getenv("ZOOMCHAT_EVENTS_CHANNEL"); v != "" {
		cfg.Events.Channel = v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML key, the name users see in config.yaml.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(verrs[0])
		}
		return fmt.Errorf("%w: %v", pferrors.ErrValidation, err)
	}

	if c.Events.Enabled {
		if c.Events.Address == "" {
			return fmt.Errorf("%w: events.address is required when events are enabled", pferrors.ErrValidation)
		}
		if c.Events.Channel == "" {
			return fmt.Errorf("%w: events.channel is required when events are enabled", pferrors.ErrValidation)
		}
	}

	return nil
}

// describe turns a validator failure into a message naming the YAML key.
func describe(fe validator.FieldError) error {
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%w: invalid %s: %q (must be %s)",
			pferrors.ErrValidation, field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hostname_port":
		return fmt.Errorf("%w: invalid %s: %q (must be host:port)", pferrors.ErrValidation, field, fe.Value())
	case "min", "max":
		return fmt.Errorf("%w: %s out of range: %v", pferrors.ErrValidation, field, fe.Value())
	default:
		return fmt.Errorf("%w: invalid %s", pferrors.ErrValidation, field)
	}
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
// The Redis password is never written; keep it in .env instead.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	fileCfg := *cfg
	fileCfg.Events.Password = ""

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// MetricsPath returns the expanded metrics textfile path, or "" when unset.
func (c *CLIConfig) MetricsPath() (string, error) {
	return ExpandPath(c.MetricsTextfile)
}
