// Package audio gatekeeps raw uploads before they become file records.
package audio

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format, only mp3 and wav are accepted")

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

type Processed struct {
	Path string

	Size   int64
	Format string
}

// Process validates an uploaded file and determines its canonical format
// from content, falling back to the file extension.
func Process(path string) (*Processed, error) {
	info, err := os.Stat(path)

	if err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)

	if err != nil {
		return nil, err
	}

	return &Processed{
		Path: path,

		Size:   info.Size(),
		Format: format,
	}, nil
}

func DetectFormat(path string) (string, error) {
	file, err := os.Open(path)

	if err != nil {
		return "", err
	}

	defer file.Close()

	header := make([]byte, 12)

	if _, err := io.ReadFull(file, header); err == nil {
		if bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")) {
			return FormatWAV, nil
		}

		if bytes.Equal(header[:3], []byte("ID3")) {
			return FormatMP3, nil
		}

		// bare MPEG frame sync, no ID3 tag
		if header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
			return FormatMP3, nil
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3, nil
	case ".wav":
		return FormatWAV, nil
	}

	return "", ErrUnsupportedFormat
}

// Duration decodes the audio stream and returns its length in seconds. File
// size heuristics are not good enough to enforce the sample length policy,
// so the stream is actually decoded.
func Duration(path string) (float64, error) {
	format, err := DetectFormat(path)

	if err != nil {
		return 0, err
	}

	file, err := os.Open(path)

	if err != nil {
		return 0, err
	}

	defer file.Close()

	switch format {
	case FormatWAV:
		return wavDuration(file)
	case FormatMP3:
		return mp3Duration(file)
	}

	return 0, ErrUnsupportedFormat
}

func wavDuration(file *os.File) (float64, error) {
	decoder := wav.NewDecoder(file)

	duration, err := decoder.Duration()

	if err != nil {
		return 0, err
	}

	return duration.Seconds(), nil
}

func mp3Duration(file *os.File) (float64, error) {
	decoder, err := mp3.NewDecoder(file)

	if err != nil {
		return 0, err
	}

	// Length reports decoded PCM bytes, 16-bit stereo
	samples := decoder.Length() / 4

	return float64(samples) / float64(decoder.SampleRate()), nil
}
