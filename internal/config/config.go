package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Loader    LoaderConfig    `yaml:"loader" envconfig:"LOADER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Exit      ExitConfig      `yaml:"exit" envconfig:"EXIT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// OutputConfig controls where and how derived files are written.
type OutputConfig struct {
	// Dir overrides the output directory; empty writes next to the input.
	Dir    string `yaml:"dir" envconfig:"DIR"`
	BOM    bool   `yaml:"bom" envconfig:"BOM"`
	Atomic bool   `yaml:"atomic" envconfig:"ATOMIC"`
}

// LoaderConfig tunes dataset ingestion.
type LoaderConfig struct {
	// MaxFileSize in bytes; 0 means unlimited.
	MaxFileSize int64    `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE"`
	NAValues    []string `yaml:"na_values" envconfig:"NA_VALUES"`
}

// TelemetryConfig enables file-based tracing and metrics. Empty paths disable them.
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// ExitConfig selects the exit-code policy.
type ExitConfig struct {
	// StrictExitCodes makes every error exit 1. By default only argument and
	// missing-file errors do; operation errors exit 0 with an error envelope.
	StrictExitCodes bool `yaml:"strict_exit_codes" envconfig:"STRICT_EXIT_CODES"`
}

// Load builds the configuration from defaults, then the YAML file if one is
// found, then PREP_* environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML onto cfg; keys absent from the file keep their value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}

	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	switch c.Logging.Output {
	case LogOutputNone, LogOutputStderr:
	case LogOutputFile:
		if c.Logging.FilePath == "" {
			return fmt.Errorf("logging.file_path is required when logging.output is %q", LogOutputFile)
		}
	default:
		return fmt.Errorf("invalid log output: %q (stdout is reserved for results)", c.Logging.Output)
	}

	if c.Loader.MaxFileSize < 0 {
		return fmt.Errorf("loader.max_file_size must not be negative")
	}

	if c.Output.Dir != "" {
		info, err := os.Stat(c.Output.Dir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("output.dir %s is not a directory", c.Output.Dir)
		}
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	logPath := DefaultLogFileName
	if paths, err := GetPaths(); err == nil {
		logPath = paths.GetLogPath(DefaultLogFileName)
	}

	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   LogOutputNone,
			FilePath: logPath,
		},
		Output: OutputConfig{
			Atomic: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
		},
	}
}

// ResolveLogPath makes a relative log path relative to the executable's logs directory.
func (c *Config) ResolveLogPath() string {
	if c.Logging.FilePath == "" || filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath
	}
	paths, err := GetPaths()
	if err != nil {
		return c.Logging.FilePath
	}
	return filepath.Join(paths.ExecutableDir, c.Logging.FilePath)
}
