// ABOUTME: Reads embedded media tags from cached files
// ABOUTME: Tags are informational only, a file without them is still a success

package cache

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Media holds the embedded tags of a cached file
type Media struct {
	Title    string
	Artist   string
	Album    string
	FileType string
}

// DescribeMedia reads embedded tags (MP4, MP3, FLAC, OGG) from the file at path
func DescribeMedia(path string) (Media, error) {
	file, err := os.Open(path)
	if err != nil {
		return Media{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return Media{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	return Media{
		Title:    metadata.Title(),
		Artist:   metadata.Artist(),
		Album:    metadata.Album(),
		FileType: string(metadata.FileType()),
	}, nil
}
