// ABOUTME: The precache run: load settings, fetch the playlist, download every entry
// ABOUTME: Validation failures stop the run before any download, per-file failures do not

package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"precache-movie-night/cache"
	"precache-movie-night/config"
	"precache-movie-night/playlist"
)

// Summary is the result of a completed run
type Summary struct {
	Downloaded int
	Total      int
	Results    []cache.Result
}

// RunPrecache executes one precache run, printing progress to out.
// Any returned error is fatal; the summary line is only printed on success.
func RunPrecache(ctx context.Context, opts RunOptions, out io.Writer) (Summary, error) {
	con := newConsole(out)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	remote, err := config.LoadRemoteConfig(opts.RemoteConfigPath)
	if err != nil {
		return Summary{}, err
	}

	local, created, err := config.LoadLocalConfig(opts.LocalConfigPath)
	if err != nil {
		return Summary{}, err
	}

	if created {
		con.GeneratedLocalConfig(opts.LocalConfigPath, local.DownloadDirectory)
	}

	if err := config.ValidateDownloadDirectory(local.DownloadDirectory); err != nil {
		return Summary{}, err
	}

	if err := remote.Validate(); err != nil {
		return Summary{}, err
	}

	playlistURL, err := playlist.Resolve(playlist.BaseURL(remote.DownloadServer), remote.Playlist)
	if err != nil {
		return Summary{}, err
	}

	logger.Debug("settings loaded",
		zap.String("playlist", playlistURL),
		zap.String("server", remote.DownloadServer),
		zap.String("directory", local.DownloadDirectory),
	)

	names, err := playlist.NewFetcher(opts.Client, logger).Fetch(ctx, playlistURL)
	if err != nil {
		return Summary{}, err
	}

	downloader := cache.NewDownloader(cache.Options{
		Client:   opts.Client,
		Dir:      local.DownloadDirectory,
		Server:   remote.DownloadServer,
		Reporter: con,
		Progress: opts.Progress,
		Logger:   logger,
	})

	summary := Summary{
		Total:   len(names),
		Results: make([]cache.Result, 0, len(names)),
	}

	for _, name := range names {
		res, err := downloader.Fetch(ctx, name)
		summary.Results = append(summary.Results, res)

		if err != nil {
			return summary, fmt.Errorf("failed to cache %q: %w", name, err)
		}

		if res.Outcome.Succeeded() {
			summary.Downloaded++
		}
	}

	logger.Debug("run complete", zap.Int("downloaded", summary.Downloaded), zap.Int("total", summary.Total))
	con.Summary(summary.Downloaded, summary.Total)

	return summary, nil
}
