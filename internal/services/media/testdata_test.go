package media

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/require"
)

// mp3Frames returns n silent MPEG-1 Layer III frames (128kbps, 44.1kHz)
func mp3Frames(n int) []byte {
	const frameSize = 144 * 128000 / 44100
	frame := make([]byte, frameSize)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
	return bytes.Repeat(frame, n)
}

// taggedMP3 prefixes mp3Frames(n) with an ID3v2.4 tag
func taggedMP3(t *testing.T, title, artist string, n int) []byte {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetTitle(title)
	tag.SetArtist(artist)

	var buf bytes.Buffer
	_, err := tag.WriteTo(&buf)
	require.NoError(t, err)
	buf.Write(mp3Frames(n))
	return buf.Bytes()
}
