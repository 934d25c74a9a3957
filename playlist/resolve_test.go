package playlist

import (
	"errors"
	"testing"
)

func TestBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"  ":                        "",
		"http://example.com/files":  "http://example.com/files/",
		"http://example.com/files/": "http://example.com/files/",
		"http://example.com":        "http://example.com/",
	}

	for in, want := range tests {
		if got := BaseURL(in); got != want {
			t.Errorf("BaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		server      string
		ref         string
		want        string
		expectError bool
	}{
		{
			name:   "relative playlist joins server",
			server: "http://example.com/files",
			ref:    "list.json",
			want:   "http://example.com/files/list.json",
		},
		{
			name:   "nested relative path",
			server: "https://cdn.example.com/movie-night/",
			ref:    "season1/a.mp4",
			want:   "https://cdn.example.com/movie-night/season1/a.mp4",
		},
		{
			name:   "absolute reference overrides server",
			server: "http://example.com/files",
			ref:    "https://other.example.org/list.json",
			want:   "https://other.example.org/list.json",
		},
		{
			name: "absolute reference without server",
			ref:  "https://example.com/list.json",
			want: "https://example.com/list.json",
		},
		{
			name:        "relative reference without server",
			ref:         "list.json",
			expectError: true,
		},
		{
			name:        "server without host",
			server:      "files",
			ref:         "list.json",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(BaseURL(tt.server), tt.ref)

			if tt.expectError {
				if !errors.Is(err, ErrUnresolvable) {
					t.Errorf("Expected ErrUnresolvable, got %v (%q)", err, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}
