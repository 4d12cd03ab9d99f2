package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeWAV writes a silent mono 16-bit PCM file of the given length.
func writeWAV(t *testing.T, path string, seconds float64) {
	t.Helper()

	const sampleRate = 8000

	samples := int(seconds * sampleRate)
	dataSize := samples * 2

	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestProcessWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.wav")
	writeWAV(t, path, 3.2)

	processed, err := Process(path)
	require.NoError(t, err)

	require.Equal(t, FormatWAV, processed.Format)
	require.Equal(t, path, processed.Path)
	require.Greater(t, processed.Size, int64(0))
}

func TestDetectFormatByContent(t *testing.T) {
	// misleading extension, format comes from the header
	path := filepath.Join(t.TempDir(), "sample.bin")
	writeWAV(t, path, 1)

	format, err := DetectFormat(path)
	require.NoError(t, err)
	require.Equal(t, FormatWAV, format)
}

func TestDetectFormatMP3Header(t *testing.T) {
	dir := t.TempDir()

	id3 := filepath.Join(dir, "tagged.bin")
	require.NoError(t, os.WriteFile(id3, append([]byte("ID3"), make([]byte, 16)...), 0o644))

	format, err := DetectFormat(id3)
	require.NoError(t, err)
	require.Equal(t, FormatMP3, format)

	sync := filepath.Join(dir, "bare.bin")
	require.NoError(t, os.WriteFile(sync, append([]byte{0xFF, 0xFB}, make([]byte, 16)...), 0o644))

	format, err = DetectFormat(sync)
	require.NoError(t, err)
	require.Equal(t, FormatMP3, format)
}

func TestDetectFormatByExtension(t *testing.T) {
	// too short to sniff, extension decides
	path := filepath.Join(t.TempDir(), "tiny.mp3")
	require.NoError(t, os.WriteFile(path, []byte{0x00}, 0o644))

	format, err := DetectFormat(path)
	require.NoError(t, err)
	require.Equal(t, FormatMP3, format)
}

func TestDetectFormatUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio at all, just text."), 0o644))

	_, err := DetectFormat(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Process(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDuration(t *testing.T) {
	for _, seconds := range []float64{1, 3.2, 10} {
		path := filepath.Join(t.TempDir(), "sample.wav")
		writeWAV(t, path, seconds)

		duration, err := Duration(path)
		require.NoError(t, err)
		require.InDelta(t, seconds, duration, 0.05)
	}
}
