// internal/progress/progress.go

// Package progress holds the progress-reporting plumbing shared by the
// compress and decompress packages.
package progress

import (
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// EventType indicates the type of progress event.
type EventType int

const (
	// EventStart announces the total byte count of the operation.
	EventStart EventType = iota
	// EventAdvance reports bytes processed so far.
	EventAdvance
	// EventComplete marks the operation finished.
	EventComplete
)

// Event is one progress update.
type Event struct {
	Type    EventType
	Current int64
	Total   int64
}

// Callback receives progress updates during a streaming operation.
type Callback func(Event)

// BarCallback creates a callback that renders a single progress bar.
// Call Wait() on the returned container after the operation finishes.
func BarCallback() (Callback, *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100),
	)

	var bar *mpb.Bar

	callback := func(event Event) {
		switch event.Type {
		case EventStart:
			bar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.CountersKibiByte("% .1f / % .1f", decor.WC{W: 18}),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
			)
		case EventAdvance:
			if bar != nil {
				bar.SetCurrent(event.Current)
			}
		case EventComplete:
			if bar != nil {
				bar.SetCurrent(event.Total)
			}
		}
	}

	return callback, progress
}

// FormatSize formats bytes into a human-readable string.
func FormatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
