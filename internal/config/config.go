package config

import "github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"

// Config represents the complete xml-analyzer configuration. It can be
// loaded from .xmlanalyzer/config.yml with environment variable
// overrides.
type Config struct {
	Chunking xmlmodel.ChunkingConfig `yaml:"chunking" mapstructure:"chunking"`
	Handlers HandlersConfig          `yaml:"handlers" mapstructure:"handlers"`
	Parser   ParserConfig            `yaml:"parser" mapstructure:"parser"`
	Paths    PathsConfig             `yaml:"paths" mapstructure:"paths"`
}

// HandlersConfig configures the handler dispatch engine's registry.
type HandlersConfig struct {
	// ConfidenceThreshold overrides handlers.DefaultConfidenceThreshold.
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	// Order restricts and orders the registry by handler name (see
	// handlers.NewRegistryFromNames). Empty means "use every handler
	// in its default order".
	Order []string `yaml:"order" mapstructure:"order"`
}

// ParserConfig bounds the XML parser.
type ParserConfig struct {
	// MaxFileSizeMB is the file-size ceiling passed to
	// xmlparser.WithSizeLimit. Zero means unbounded.
	MaxFileSizeMB float64 `yaml:"max_file_size_mb" mapstructure:"max_file_size_mb"`
}

// PathsConfig defines which files the scan and watch commands walk.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for files to analyze
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Default returns a configuration with sensible defaults: the
// chunking defaults fixed by spec.md §4.5 (2000/200/100/true), the
// handler dispatch engine's default confidence threshold and full
// handler set, an unbounded parser, and a broad *.xml include glob.
func Default() *Config {
	return &Config{
		Chunking: xmlmodel.DefaultChunkingConfig(),
		Handlers: HandlersConfig{
			ConfidenceThreshold: 0.3,
		},
		Parser: ParserConfig{
			MaxFileSizeMB: 0,
		},
		Paths: PathsConfig{
			Include: []string{"**/*.xml"},
			Ignore: []string{
				"node_modules/**",
				".git/**",
				"vendor/**",
				"dist/**",
				"build/**",
			},
		},
	}
}
