// ABOUTME: Fetches the remote playlist manifest and decodes it
// ABOUTME: A playlist is a non-empty JSON array of file names, anything else is rejected

// Package playlist resolves and fetches the remote playlist manifest that lists
// the files to precache.
package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var (
	// ErrUnexpectedResponse is returned for a playlist body that is not a non-empty array of strings
	ErrUnexpectedResponse = errors.New("unexpected server response after retrieving json, expected array of strings")

	// ErrNotFound is returned when the playlist endpoint does not answer 200
	ErrNotFound = errors.New("unable to find the playlist")
)

// Fetcher downloads playlist manifests
type Fetcher struct {
	Client *http.Client
	Logger *zap.Logger
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient and a nil logger discards output.
func NewFetcher(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{Client: client, Logger: logger}
}

// Fetch retrieves the playlist at url and returns its file names in order
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist request: %w", err)
	}

	f.Logger.Debug("fetching playlist", zap.String("url", url))

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w at %q: %w", ErrNotFound, url, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		f.Logger.Debug("playlist request failed", zap.String("url", url), zap.Int("status", resp.StatusCode))

		return nil, fmt.Errorf("%w at %q (%s), unable to continue", ErrNotFound, url, resp.Status)
	}

	names, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	f.Logger.Debug("playlist fetched", zap.String("url", url), zap.Int("entries", len(names)))

	return names, nil
}

// Decode reads a playlist body: a non-empty JSON array whose elements are all strings.
// Anything after the array other than whitespace is rejected.
func Decode(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrUnexpectedResponse)
	}

	if len(raw) == 0 {
		return nil, ErrUnexpectedResponse
	}

	names := make([]string, 0, len(raw))

	for i, elem := range raw {
		// null would otherwise decode to ""
		if len(elem) == 0 || elem[0] != '"' {
			return nil, fmt.Errorf("%w: element %d is %s", ErrUnexpectedResponse, i, elem)
		}

		var name string
		if err := json.Unmarshal(elem, &name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}

		names = append(names, name)
	}

	return names, nil
}
