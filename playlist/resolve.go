// ABOUTME: Resolves playlist and file references against the optional download server
// ABOUTME: Relative references join the server base URL, absolute ones replace it

package playlist

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnresolvable is returned when a reference does not resolve to an absolute URL
var ErrUnresolvable = errors.New("a fully qualified url is required when DownloadServer is empty")

// BaseURL turns a download server setting into a base for reference resolution.
// An empty server stays empty; otherwise the result ends in exactly one slash
// so the last path segment of the server is kept when joining.
func BaseURL(server string) string {
	server = strings.TrimSpace(server)
	if server == "" {
		return ""
	}

	return strings.TrimRight(server, "/") + "/"
}

// Resolve joins ref onto base using standard relative reference resolution.
// An absolute ref overrides base. The result must carry a scheme and host.
func Resolve(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference %q: %w", ref, err)
	}

	resolved := refURL
	if base != "" {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("invalid download server %q: %w", base, err)
		}

		resolved = baseURL.ResolveReference(refURL)
	}

	if !resolved.IsAbs() || resolved.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, ref)
	}

	return resolved.String(), nil
}
