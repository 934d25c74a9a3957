// ABOUTME: Downloads playlist entries into the cache directory one at a time
// ABOUTME: Failed entries are skipped and any stale copy from a previous run is deleted

// Package cache downloads the files listed in a playlist into a local cache
// directory. Files are fetched sequentially; a failed entry never aborts the
// run, but a failure to write to disk does.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"precache-movie-night/playlist"
)

// ChunkSize is the buffer size used when streaming a response to disk
const ChunkSize = 4096

// Downloader fetches playlist entries into Dir
type Downloader struct {
	Client   *http.Client
	Dir      string       // Cache directory, must already exist
	BaseURL  string       // Result of playlist.BaseURL, may be empty
	Reporter Reporter     // Receives per-file messages
	Progress ProgressFunc // Optional byte progress
	Logger   *zap.Logger
}

// Options configures a Downloader
type Options struct {
	Client   *http.Client
	Dir      string
	Server   string
	Reporter Reporter
	Progress ProgressFunc
	Logger   *zap.Logger
}

// NewDownloader creates a Downloader, filling in defaults for nil options
func NewDownloader(opts Options) *Downloader {
	d := &Downloader{
		Client:   opts.Client,
		Dir:      opts.Dir,
		BaseURL:  playlist.BaseURL(opts.Server),
		Reporter: opts.Reporter,
		Progress: opts.Progress,
		Logger:   opts.Logger,
	}

	if d.Client == nil {
		d.Client = http.DefaultClient
	}

	if d.Reporter == nil {
		d.Reporter = nopReporter{}
	}

	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	return d
}

// Fetch downloads one playlist entry.
// Per-entry failures are described by the Result and return a nil error;
// a non-nil error means the cache directory could not be written.
func (d *Downloader) Fetch(ctx context.Context, entry string) (Result, error) {
	res := Result{Entry: entry}

	fileURL, err := playlist.Resolve(d.BaseURL, entry)
	if err != nil {
		return d.fail(res, err)
	}

	res.URL = fileURL

	name, err := FileName(fileURL)
	if err != nil {
		return d.fail(res, err)
	}

	res.FileName = name
	res.Path = filepath.Join(d.Dir, name)

	d.Reporter.Starting(res)
	d.Logger.Debug("downloading", zap.String("url", fileURL), zap.String("path", res.Path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return d.fail(res, err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return d.fail(res, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return d.fail(res, &StatusError{URL: fileURL, StatusCode: resp.StatusCode, Status: resp.Status})
	}

	written, err := d.write(res.Path, name, resp)
	if err != nil {
		return res, fmt.Errorf("failed to write %q: %w", res.Path, err)
	}

	res.Outcome = OutcomeDownloaded
	res.Bytes = written

	if media, err := DescribeMedia(res.Path); err == nil {
		res.Media = media
	} else {
		d.Logger.Debug("no media tags", zap.String("path", res.Path), zap.Error(err))
	}

	d.Logger.Debug("downloaded",
		zap.String("path", res.Path),
		zap.Int64("bytes", written),
		zap.String("title", res.Media.Title),
	)
	d.Reporter.Completed(res)

	return res, nil
}

// fail reports a failed entry and deletes a stale cached copy if there is one
func (d *Downloader) fail(res Result, cause error) (Result, error) {
	res.Err = cause
	res.Outcome = OutcomeFailedNoStale

	d.Logger.Debug("download failed", zap.String("entry", res.Entry), zap.Error(cause))
	d.Reporter.Failed(res)

	if res.Path == "" {
		return res, nil
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, nil
		}

		return res, fmt.Errorf("failed to check for a stale copy of %q: %w", res.FileName, err)
	}

	if info.IsDir() {
		return res, nil
	}

	d.Reporter.RemovingStale(res)

	if err := os.Remove(res.Path); err != nil {
		return res, fmt.Errorf("failed to delete stale copy of %q: %w", res.FileName, err)
	}

	res.Outcome = OutcomeFailedRemovedStale

	return res, nil
}

// write streams the response body to path, truncating any existing file
func (d *Downloader) write(target, name string, resp *http.Response) (written int64, err error) {
	file, err := os.Create(target)
	if err != nil {
		return 0, err
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var dst io.Writer = file

	if d.Progress != nil {
		if bar := d.Progress(name, resp.ContentLength); bar != nil {
			dst = io.MultiWriter(file, bar)

			defer func() {
				if finishErr := bar.Finish(); finishErr != nil {
					d.Logger.Debug("progress finish failed", zap.Error(finishErr))
				}
			}()
		}
	}

	return copyChunks(dst, resp.Body)
}

// copyChunks copies src to dst in ChunkSize reads until src is exhausted
func copyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)

	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)

			if err != nil {
				return written, err
			}

			if w != n {
				return written, io.ErrShortWrite
			}
		}

		if errors.Is(readErr, io.EOF) {
			return written, nil
		}

		if readErr != nil {
			return written, readErr
		}
	}
}

// FileName returns the last path segment of rawURL, ignoring query and fragment.
// Percent escapes are decoded, so "My%20Movie.mkv" is stored as "My Movie.mkv".
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoFileName, err)
	}

	// A trailing slash means the last segment is empty
	if u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return "", fmt.Errorf("%w: %q", ErrNoFileName, rawURL)
	}

	name := path.Base(u.Path)
	switch name {
	case "", ".", "/", "..":
		return "", fmt.Errorf("%w: %q", ErrNoFileName, rawURL)
	}

	return name, nil
}
