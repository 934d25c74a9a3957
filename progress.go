// ABOUTME: Byte progress bars for file downloads
// ABOUTME: Only used when stdout is a terminal, the bar is cleared when a file finishes

package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"precache-movie-night/cache"
)

const progressThrottle = 100 * time.Millisecond

// newProgressFunc returns a cache.ProgressFunc drawing on w.
// A size of -1 (no Content-Length) renders a spinner instead of a bar.
func newProgressFunc(w io.Writer) cache.ProgressFunc {
	return func(fileName string, size int64) cache.ProgressWriter {
		return progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(truncate(fileName, 30)),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(progressThrottle),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
