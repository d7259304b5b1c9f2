package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/redhat-ai-americas/xml-analyzer/internal/cache"
	"github.com/redhat-ai-americas/xml-analyzer/internal/scanstore"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
)

var (
	scanQuietFlag bool
	scanDBPath    string
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Analyze every matching XML file under a directory",
	Long: `Scan walks dir, analyzing every file matched by the configured
include globs (and not excluded by the ignore globs), printing a
one-line summary per file. Results are cached by content hash in an
in-process LRU and recorded in a SQLite ledger (.xmlanalyzer/scans.db
by default) so a subsequent scan skips files that haven't changed.

Examples:
  xmlanalyzer scan .
  xmlanalyzer scan ./docs --quiet`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanQuietFlag, "quiet", "q", false, "suppress the progress bar and per-file lines")
	scanCmd.Flags().StringVar(&scanDBPath, "db", "", "path to the scan ledger (default: <dir>/.xmlanalyzer/scans.db)")
}

// scanGlobs compiles a PathsConfig's include/ignore patterns once per run.
type scanGlobs struct {
	include []glob.Glob
	ignore  []glob.Glob
}

func compileScanGlobs(include, ignore []string) (scanGlobs, error) {
	var g scanGlobs
	for _, p := range include {
		compiled, err := glob.Compile(p, '/')
		if err != nil {
			return scanGlobs{}, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		g.include = append(g.include, compiled)
	}
	for _, p := range ignore {
		compiled, err := glob.Compile(p, '/')
		if err != nil {
			return scanGlobs{}, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		g.ignore = append(g.ignore, compiled)
	}
	return g, nil
}

func (g scanGlobs) matches(relPath string) bool {
	for _, ig := range g.ignore {
		if ig.Match(relPath) {
			return false
		}
	}
	for _, inc := range g.include {
		if inc.Match(relPath) {
			return true
		}
	}
	return false
}

func discoverScanFiles(rootDir string, g scanGlobs) ([]string, error) {
	var matched []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, ".xmlanalyzer/") {
			return nil
		}
		if g.matches(rel) {
			matched = append(matched, path)
		}
		return nil
	})
	return matched, err
}

func runScan(cmd *cobra.Command, args []string) error {
	rootDir := args[0]
	cfg := currentConfig()

	globs, err := compileScanGlobs(cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	files, err := discoverScanFiles(rootDir, globs)
	if err != nil {
		return fmt.Errorf("failed to discover files under %s: %w", rootDir, err)
	}

	dbPath := scanDBPath
	if dbPath == "" {
		dbPath = filepath.Join(rootDir, ".xmlanalyzer", "scans.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	store, err := scanstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	analysisCache, err := cache.New(cache.DefaultCapacity)
	if err != nil {
		return err
	}

	progress := newScanProgressReporter(scanQuietFlag)
	progress.start(len(files))

	var analyzed, skipped, failed int
	sizeLimit := xmlparser.SizeLimit(cfg.Parser.MaxFileSizeMB)

	for _, path := range files {
		progress.advance()

		content, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: failed to read: %v\n", path, err)
			continue
		}
		contentHash := cache.ContentHash(content)

		if unchanged, _ := store.Unchanged(path, contentHash); unchanged {
			skipped++
			if !scanQuietFlag {
				fmt.Printf("%s: unchanged, skipped\n", path)
			}
			continue
		}

		analysis, cached := analysisCache.Get(contentHash)
		if !cached {
			analysis, err = xmlanalysis.Analyze(path, xmlanalysis.WithSizeLimit(sizeLimit))
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				continue
			}
			analysisCache.Set(contentHash, analysis)
		}

		chunks, err := xmlanalysis.Chunk(path, "", cfg.Chunking, xmlanalysis.WithSizeLimit(sizeLimit))
		chunkCount := 0
		if err == nil {
			chunkCount = len(chunks)
		}

		handlerUsed, _ := analysis.Metadata["handler_used"].(string)
		if err := store.Record(scanstore.Record{
			FilePath:    path,
			ContentHash: contentHash,
			LastScanned: time.Now(),
			HandlerUsed: handlerUsed,
			TypeName:    analysis.TypeName,
			ChunkCount:  chunkCount,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "%s: failed to record scan result: %v\n", path, err)
		}

		analyzed++
		if !scanQuietFlag {
			fmt.Printf("%s: analyzed (%d chunks)\n", path, chunkCount)
		}
	}

	progress.summarize(analyzed, skipped, failed)
	return nil
}
