package media

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/tcolgate/mp3"
)

// Metadata is what can be learned from an audio file's contents
type Metadata struct {
	Title         string
	Artist        string
	LengthSeconds float64
}

// ExtractMetadata reads ID3 title/artist and sums MP3 frame durations.
// Files that are not MP3 yield empty metadata, not an error.
func ExtractMetadata(path string) (Metadata, error) {
	var meta Metadata

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return meta, fmt.Errorf("reading id3 tag of %s: %w", path, err)
	}
	meta.Title = strings.TrimSpace(tag.Title())
	meta.Artist = strings.TrimSpace(tag.Artist())
	tag.Close()

	f, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	meta.LengthSeconds = mp3Duration(f)
	return meta, nil
}

// mp3Duration decodes frame headers until the stream ends or stops making sense
func mp3Duration(r io.Reader) float64 {
	var (
		d       = mp3.NewDecoder(r)
		frame   mp3.Frame
		skipped int
		total   float64
	)

	for {
		// any decode error ends the stream, including trailing garbage
		if err := d.Decode(&frame, &skipped); err != nil {
			return total
		}
		total += frame.Duration().Seconds()
	}
}
