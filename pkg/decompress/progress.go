// pkg/decompress/progress.go
package decompress

import (
	"fmt"
	"strings"
	"time"

	"github.com/vbauerster/mpb/v8"

	"github.com/qflate/qflate/internal/progress"
)

// ProgressEvent is one progress update during decompression
type ProgressEvent = progress.Event

// ProgressCallback receives progress updates (optional)
type ProgressCallback = progress.Callback

// Event types re-exported for callers
const (
	EventStart    = progress.EventStart
	EventAdvance  = progress.EventAdvance
	EventComplete = progress.EventComplete
)

// ProgressBarCallback creates a progress callback that displays a progress bar
// Returns the callback function and the progress container (call Wait() after decompression)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	return progress.BarCallback()
}

// FormatSummary formats a decompression result into a human-readable summary string
func FormatSummary(result *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Decompressed %s -> %s in %s\n",
		progress.FormatSize(result.CompressedSize),
		progress.FormatSize(result.DecompressedSize),
		result.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  Blocks: %d\n", result.Blocks)
	return b.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	return progress.FormatSize(bytes)
}
