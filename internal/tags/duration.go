package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// ErrUnsupported is returned for formats whose duration cannot be probed.
var ErrUnsupported = errors.New("unsupported format")

// ReadDuration reads the playing time of an audio file.
// It uses header/stream metadata where possible instead of decoding.
func ReadDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtMP3, ExtFLAC, ExtWAV, ExtM4A, ExtMP4, ExtOGG, ExtOPUS:
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	if ext == ExtFLAC {
		return readFLACDuration(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	switch ext {
	case ExtMP3:
		return readMP3Duration(f)
	case ExtWAV:
		return readWAVDuration(f)
	case ExtM4A, ExtMP4:
		return readM4ADuration(f)
	default:
		return getOggDuration(f)
	}
}

func readMP3Duration(f *os.File) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}
	sampleCount := max(decoder.SampleCount(), 0)

	return time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second)), nil
}

// readFLACDuration reads total samples and sample rate from the STREAMINFO block.
func readFLACDuration(path string) (time.Duration, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		// prepended ID3 tags confuse go-flac
		return readFLACWithBeep(path)
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		// 20-bit sample rate at bytes 10-12, 36-bit sample count at bytes 13-17
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])
		if sampleRate == 0 {
			break
		}
		return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), nil
	}

	return readFLACWithBeep(path)
}

// readFLACWithBeep uses beep's FLAC decoder as fallback.
func readFLACWithBeep(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return 0, err
	}

	streamer, format, err := flac.Decode(f)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

func readWAVDuration(f *os.File) (time.Duration, error) {
	streamer, format, err := wav.Decode(f)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

func readM4ADuration(f *os.File) (time.Duration, error) {
	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	return container.Duration(), nil
}

// getOggDuration derives the duration from the granule position of the last Ogg page.
// Opus granules always count 48kHz samples.
func getOggDuration(f *os.File) (time.Duration, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// the last page lives in the final 64KB
	searchSize := min(int64(65536), fi.Size())
	if _, err := f.Seek(-searchSize, io.SeekEnd); err != nil {
		return 0, err
	}

	buf := make([]byte, searchSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	buf = buf[:n]

	var lastGranule int64
	for i := len(buf) - 27; i >= 0; i-- {
		if buf[i] != 'O' || buf[i+1] != 'g' || buf[i+2] != 'g' || buf[i+3] != 'S' {
			continue
		}
		// granule position: offset 6, 8 bytes little-endian
		for b := 7; b >= 0; b-- {
			lastGranule = lastGranule<<8 | int64(buf[i+6+b])
		}
		break
	}

	if lastGranule > 0 {
		return time.Duration(float64(lastGranule) / 48000.0 * float64(time.Second)), nil
	}
	return 0, errors.New("could not determine ogg duration")
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
