package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// scanProgressReporter renders a progress bar for a directory scan,
// following the teacher's CLIProgressReporter shape (one bar per phase,
// quiet mode suppresses all output).
type scanProgressReporter struct {
	quiet     bool
	bar       *progressbar.ProgressBar
	startTime time.Time
}

func newScanProgressReporter(quiet bool) *scanProgressReporter {
	return &scanProgressReporter{quiet: quiet, startTime: time.Now()}
}

func (r *scanProgressReporter) start(total int) {
	if r.quiet {
		return
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (r *scanProgressReporter) advance() {
	if r.quiet || r.bar == nil {
		return
	}
	r.bar.Add(1)
}

func (r *scanProgressReporter) summarize(analyzed, skipped, failed int) {
	if r.quiet {
		fmt.Printf("Scan complete: %d analyzed, %d skipped, %d failed\n", analyzed, skipped, failed)
		return
	}
	fmt.Printf("✓ Scan complete in %.1fs: %d analyzed, %d unchanged (skipped), %d failed\n",
		time.Since(r.startTime).Seconds(), analyzed, skipped, failed)
}
