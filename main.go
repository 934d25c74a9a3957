// ABOUTME: Entry point for precache-movie-night
// ABOUTME: Parses the command line, runs the precache and pauses before exiting

// Package main provides the entry point for precache-movie-night, which downloads
// the files listed in a remote playlist into a local movie night cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"precache-movie-night/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	noPause := flag.Bool("no-pause", false, "exit without waiting for enter")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: precache-movie-night [flags] [server_config]\n")
		fmt.Fprintf(flag.CommandLine.Output(), "\nserver_config defaults to %s\n\nFlags:\n", config.DefaultRemoteConfigFile)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()

		return 1
	}

	remotePath := config.DefaultRemoteConfigFile
	if flag.NArg() == 1 {
		remotePath = flag.Arg(0)
	}

	con := newConsole(os.Stdout)

	logger := zap.NewNop()
	if *debug {
		l, err := SetupDebugLog(debugLogFile)
		if err != nil {
			con.Warning(err)
		} else {
			logger = l

			defer func() {
				_ = logger.Sync()
			}()
		}
	}

	opts := RunOptions{
		RemoteConfigPath: remotePath,
		LocalConfigPath:  config.LocalConfigFile,
		Logger:           logger,
	}

	if isTerminal(os.Stdout) {
		opts.Progress = newProgressFunc(os.Stdout)
	}

	code := 0
	if _, err := RunPrecache(context.Background(), opts, os.Stdout); err != nil {
		logger.Debug("run failed", zap.Error(err))
		con.Fatal(err)

		code = 1
	}

	if !*noPause {
		con.WaitForEnter(os.Stdin)
	}

	return code
}
