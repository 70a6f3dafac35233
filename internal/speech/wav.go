package speech

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

var errNotPCM16 = errors.New("not a 16-bit PCM WAV file")

// WAVE_FORMAT_EXTENSIBLE needs 40 bytes
const maxFmtChunk = 64

// pcm holds the first channel of a 16-bit PCM WAV file.
type pcm struct {
	samples    []int16
	sampleRate int
}

func readWAV(path string) (*pcm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return nil, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}

	var (
		channels   int
		sampleRate int
		haveFormat bool
	)
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			return nil, fmt.Errorf("data chunk not found: %w", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			if size > maxFmtChunk {
				return nil, fmt.Errorf("fmt chunk of %d bytes: %w", size, errNotPCM16)
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(f, buf); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			if size < 16 {
				return nil, errNotPCM16
			}
			format := binary.LittleEndian.Uint16(buf[0:2])
			channels = int(binary.LittleEndian.Uint16(buf[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(buf[4:8]))
			bits := binary.LittleEndian.Uint16(buf[14:16])
			// 0xFFFE is WAVE_FORMAT_EXTENSIBLE
			if (format != 1 && format != 0xFFFE) || bits != 16 || channels < 1 || sampleRate < 1 {
				return nil, errNotPCM16
			}
			haveFormat = true
		case "data":
			if !haveFormat {
				return nil, errors.New("data chunk before fmt chunk")
			}
			// ffmpeg writes 0xFFFFFFFF when streaming to a pipe
			data, err := io.ReadAll(io.LimitReader(f, size))
			if err != nil {
				return nil, fmt.Errorf("read data chunk: %w", err)
			}
			frames := len(data) / (2 * channels)
			out := &pcm{samples: make([]int16, frames), sampleRate: sampleRate}
			for i := 0; i < frames; i++ {
				out.samples[i] = int16(binary.LittleEndian.Uint16(data[i*2*channels:]))
			}
			return out, nil
		default:
			if _, err := f.Seek(size+size%2, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}

func (p *pcm) samplesFor(d time.Duration) int {
	return int(int64(p.sampleRate) * int64(d) / int64(time.Second))
}

func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// ambientLevel is the RMS of the leading calibration window, or of the whole
// clip when it is shorter than the window.
func ambientLevel(p *pcm, calibration time.Duration) float64 {
	window := p.samplesFor(calibration)
	if window <= 0 || window > len(p.samples) {
		window = len(p.samples)
	}
	return rms(p.samples[:window])
}

// silent reports whether the whole clip stays below minEnergy RMS.
func silent(p *pcm, minEnergy float64) bool {
	return rms(p.samples) < minEnergy
}
