package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (XMLANALYZER_*)
// 2. Config file (.xmlanalyzer/config.yml or .xmlanalyzer/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".xmlanalyzer")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("XMLANALYZER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("chunking.max_chunk_size")
	v.BindEnv("chunking.min_chunk_size")
	v.BindEnv("chunking.overlap_size")
	v.BindEnv("chunking.preserve_hierarchy")

	v.BindEnv("handlers.confidence_threshold")

	v.BindEnv("parser.max_file_size_mb")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("chunking.max_chunk_size", defaults.Chunking.MaxChunkSize)
	v.SetDefault("chunking.min_chunk_size", defaults.Chunking.MinChunkSize)
	v.SetDefault("chunking.overlap_size", defaults.Chunking.OverlapSize)
	v.SetDefault("chunking.preserve_hierarchy", defaults.Chunking.PreserveHierarchy)

	v.SetDefault("handlers.confidence_threshold", defaults.Handlers.ConfidenceThreshold)
	v.SetDefault("handlers.order", defaults.Handlers.Order)

	v.SetDefault("parser.max_file_size_mb", defaults.Parser.MaxFileSizeMB)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
}

// LoadConfig is a convenience function that creates a loader and loads
// config using the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
