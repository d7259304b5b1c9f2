package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/redhat-ai-americas/xml-analyzer/internal/cache"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
	"github.com/redhat-ai-americas/xml-analyzer/pkg/xmlanalysis"
)

const watchDebounce = 500 * time.Millisecond

var watchQuietFlag bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and re-analyze XML files as they change",
	Long: `Watch recursively watches dir for filesystem events (using
fsnotify) and re-analyzes any matching file a short debounce period
after its last write, printing a one-line result per file. Runs until
interrupted with Ctrl+C.

Example:
  xmlanalyzer watch ./docs`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&watchQuietFlag, "quiet", "q", false, "suppress startup/shutdown messages")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rootDir := args[0]
	cfg := currentConfig()

	globs, err := compileScanGlobs(cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirsRecursively(watcher, rootDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootDir, err)
	}

	analysisCache, err := cache.New(cache.DefaultCapacity)
	if err != nil {
		return err
	}
	sizeLimit := xmlparser.SizeLimit(cfg.Parser.MaxFileSizeMB)

	if !watchQuietFlag {
		fmt.Fprintf(os.Stderr, "Watching %s for XML changes (Ctrl+C to stop)\n", rootDir)
	}

	pending := make(map[string]*time.Timer)
	analyze := func(path string) {
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if !globs.matches(rel) {
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		contentHash := cache.ContentHash(content)
		if _, cached := analysisCache.Get(contentHash); !cached {
			analysis, err := xmlanalysis.Analyze(path, xmlanalysis.WithSizeLimit(sizeLimit))
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				return
			}
			analysisCache.Set(contentHash, analysis)
		}
		fmt.Printf("%s: re-analyzed\n", path)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				_ = watcher.Add(event.Name)
				continue
			}

			path := event.Name
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(watchDebounce, func() { analyze(path) })

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func addDirsRecursively(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if filepath.Base(path) == ".xmlanalyzer" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
