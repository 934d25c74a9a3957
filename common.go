// ABOUTME: Shared run options, debug log setup and terminal detection
// ABOUTME: Options are built once in run() and passed down, there are no package-level settings

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"precache-movie-night/cache"
)

const debugLogFile = "precache-debug.log"

// RunOptions contains everything a precache run needs
type RunOptions struct {
	RemoteConfigPath string             // Operator supplied remote settings
	LocalConfigPath  string             // Local settings, generated when missing
	Client           *http.Client       // nil uses http.DefaultClient
	Logger           *zap.Logger        // nil discards debug output
	Progress         cache.ProgressFunc // nil disables progress bars
}

// SetupDebugLog creates a development zap logger writing to filename
func SetupDebugLog(filename string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if isTerminal(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return logger, nil
}

// isTerminal checks if the given file is a terminal
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
