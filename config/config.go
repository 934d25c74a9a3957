// ABOUTME: Configuration management for the remote source and the local cache
// ABOUTME: Loads INI (or TOML) settings and generates the local settings file with defaults

// Package config loads the two settings files used by a precache run: the
// remote source settings supplied by the operator and the local cache settings
// kept next to the executable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

const (
	// DefaultRemoteConfigFile is used when no remote settings path is given
	DefaultRemoteConfigFile = "precache-remote-settings.ini"

	// LocalConfigFile is the local settings file, relative to the working directory
	LocalConfigFile = "precache-local-settings.ini"

	// DefaultDownloadDirectory is written to a freshly generated local settings file
	DefaultDownloadDirectory = "./MovieNight"

	sectionName = "Application"

	keyPlaylist          = "Playlist"
	keyDownloadServer    = "DownloadServer"
	keyDownloadDirectory = "DownloadDirectory"
)

var (
	ErrRemoteConfigMissing      = errors.New("remote settings file not found")
	ErrPlaylistMissing          = errors.New("playlist is not optional in a server configuration")
	ErrDownloadDirectoryMissing = errors.New("download directory does not exist")
)

// RemoteConfig describes where the playlist and the files it lists live
type RemoteConfig struct {
	Playlist       string `toml:"Playlist"`       // Path relative to DownloadServer, or an absolute URL
	DownloadServer string `toml:"DownloadServer"` // Optional base URL
}

// LocalConfig describes where downloaded files are stored
type LocalConfig struct {
	DownloadDirectory string
}

// tomlRemoteFile mirrors the [Application] table of a TOML remote settings file
type tomlRemoteFile struct {
	Application RemoteConfig `toml:"Application"`
}

// LoadRemoteConfig loads the remote source settings from path.
// Files ending in .toml are decoded as TOML, everything else as INI.
func LoadRemoteConfig(path string) (RemoteConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return RemoteConfig{}, fmt.Errorf("%w: %s (the server source configuration is required, default file is %q)",
				ErrRemoteConfigMissing, path, DefaultRemoteConfigFile)
		}

		return RemoteConfig{}, fmt.Errorf("failed to stat remote settings: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var file tomlRemoteFile
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return RemoteConfig{}, fmt.Errorf("failed to parse remote settings: %w", err)
		}

		return trimRemote(file.Application), nil
	}

	file, err := loadINI(path)
	if err != nil {
		return RemoteConfig{}, fmt.Errorf("failed to parse remote settings: %w", err)
	}

	section := file.Section(sectionName)

	return trimRemote(RemoteConfig{
		Playlist:       section.Key(keyPlaylist).String(),
		DownloadServer: section.Key(keyDownloadServer).String(),
	}), nil
}

// Validate checks that a playlist reference is present
func (c RemoteConfig) Validate() error {
	if c.Playlist == "" {
		return ErrPlaylistMissing
	}

	return nil
}

// LoadLocalConfig loads the local cache settings from path.
// When the file does not exist a default one is written and created is true.
// A file without a DownloadDirectory key falls back to the default without rewriting it.
func LoadLocalConfig(path string) (cfg LocalConfig, created bool, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if !os.IsNotExist(statErr) {
			return LocalConfig{}, false, fmt.Errorf("failed to stat local settings: %w", statErr)
		}

		cfg = DefaultLocalConfig()
		if err := SaveLocalConfig(path, cfg); err != nil {
			return cfg, false, err
		}

		return cfg, true, nil
	}

	file, err := loadINI(path)
	if err != nil {
		return DefaultLocalConfig(), false, fmt.Errorf("failed to parse local settings: %w", err)
	}

	dir := strings.TrimSpace(file.Section(sectionName).Key(keyDownloadDirectory).String())
	if dir == "" {
		dir = DefaultDownloadDirectory
	}

	return LocalConfig{DownloadDirectory: dir}, false, nil
}

// SaveLocalConfig writes the local cache settings as INI
func SaveLocalConfig(path string, cfg LocalConfig) error {
	file := ini.Empty()

	section, err := file.NewSection(sectionName)
	if err != nil {
		return fmt.Errorf("failed to create settings section: %w", err)
	}

	if _, err := section.NewKey(keyDownloadDirectory, cfg.DownloadDirectory); err != nil {
		return fmt.Errorf("failed to set %s: %w", keyDownloadDirectory, err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write local settings: %w", err)
	}

	return nil
}

// DefaultLocalConfig returns the settings used when none are configured
func DefaultLocalConfig() LocalConfig {
	return LocalConfig{DownloadDirectory: DefaultDownloadDirectory}
}

// ValidateDownloadDirectory checks that dir exists and is a directory.
// The directory is never created here.
func ValidateDownloadDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	return fmt.Errorf("%w: %q (ensure the plugin is installed and running from the application "+
		"installation directory, or create the directory)", ErrDownloadDirectoryMissing, dir)
}

// loadINI reads an INI file with case-insensitive section and key names.
// Only whole-line comments are recognised, so URLs keep their ";" and "#".
func loadINI(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}, path)
}

func trimRemote(c RemoteConfig) RemoteConfig {
	c.Playlist = strings.TrimSpace(c.Playlist)
	c.DownloadServer = strings.TrimSpace(c.DownloadServer)

	return c
}
