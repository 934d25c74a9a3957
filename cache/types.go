// ABOUTME: Per-file outcome types and the reporting interface used by the downloader
// ABOUTME: Outcomes are only accumulated for the run summary, nothing is persisted

package cache

// Outcome is the final state of one playlist entry
type Outcome int

const (
	OutcomeDownloaded         Outcome = iota // Written to the cache directory
	OutcomeFailedRemovedStale                // Failed, and a previous copy was deleted
	OutcomeFailedNoStale                     // Failed, nothing was cached before
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeFailedRemovedStale:
		return "failed_removed_stale"
	case OutcomeFailedNoStale:
		return "failed_no_stale"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the entry ended up in the cache
func (o Outcome) Succeeded() bool {
	return o == OutcomeDownloaded
}

// Result describes what happened to one playlist entry
type Result struct {
	Entry    string  // Name as listed in the playlist
	URL      string  // Resolved download URL, empty if resolution failed
	FileName string  // Last path segment of URL
	Path     string  // Target path inside the cache directory
	Outcome  Outcome // Final state
	Bytes    int64   // Bytes written on success
	Media    Media   // Embedded tags, zero if none could be read
	Err      error   // Cause of a failed entry
}

// Reporter receives per-file progress messages from a Downloader
type Reporter interface {
	// Starting is called before the request for a file is sent
	Starting(res Result)

	// Failed is called when a file could not be downloaded
	Failed(res Result)

	// RemovingStale is called before a previously cached copy is deleted
	RemovingStale(res Result)

	// Completed is called after a file has been written
	Completed(res Result)
}

// ProgressWriter observes bytes written for one file
type ProgressWriter interface {
	Write(p []byte) (int, error)
	Finish() error
}

// ProgressFunc creates a ProgressWriter for a file of the given size (-1 if unknown).
// It may return nil to disable progress for that file.
type ProgressFunc func(fileName string, size int64) ProgressWriter

type nopReporter struct{}

func (nopReporter) Starting(Result)      {}
func (nopReporter) Failed(Result)        {}
func (nopReporter) RemovingStale(Result) {}
func (nopReporter) Completed(Result)     {}
