package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/redhat-ai-americas/xml-analyzer/internal/config"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/spf13/cobra"
)

var (
	cfgRootDir string
	verbose    bool

	// loadedConfig is populated by initConfig and reused by every
	// subcommand via currentConfig(), so each one doesn't re-parse
	// .xmlanalyzer/config.yml on its own.
	loadedConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xmlanalyzer",
	Short: "xmlanalyzer - XML analysis and chunking engine",
	Long: `xmlanalyzer safe-parses XML documents, classifies them against a
library of format handlers (DocBook, GraphML, XLIFF, Sitemap, and more),
and splits them into size-bounded, addressable chunks suitable for
retrieval-augmented generation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if id := correlationID(err); id != "" {
			fmt.Fprintf(os.Stderr, "correlation id: %s\n", id)
		}
		os.Exit(1)
	}
}

// correlationID extracts the correlation id an AnalysisError or
// ChunkingError carries, so an operator can match a CLI failure back
// to the log line a longer-running caller (the MCP server, a batch
// scan) recorded for the same request.
func correlationID(err error) string {
	var ae *xmlmodel.AnalysisError
	if errors.As(err, &ae) {
		return ae.CorrelationID
	}
	var ce *xmlmodel.ChunkingError
	if errors.As(err, &ce) {
		return ce.CorrelationID
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgRootDir, "config", "", "project root containing .xmlanalyzer/config.yml (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads the project configuration from the --config root (or
// the current working directory) once per invocation.
func initConfig() error {
	rootDir := cfgRootDir
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		rootDir = wd
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	loadedConfig = cfg

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded configuration from %s\n", rootDir)
	}
	return nil
}

// currentConfig returns the configuration loaded by initConfig, falling
// back to defaults if a command runs without the root's PersistentPreRunE
// (e.g. in unit tests that invoke a RunE function directly).
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}
