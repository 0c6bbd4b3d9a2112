// Package iqsource provides I/Q byte sources that satisfy the same
// blocking-read contract as a real tuner, so the rest of the pipeline can
// run unmodified against a recorded capture instead of hardware.
package iqsource

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Source is the blocking-read contract both the tuner and a file-backed
// capture satisfy.
type Source interface {
	// ReadSync blocks until it has read into buf and returns the number of
	// bytes read, or an error. The count may be less than len(buf) when
	// the source delivers a short read.
	ReadSync(buf []byte) (int, error)
	Close() error
}

// ErrUnsupportedBitDepth is returned when a WAV-container capture's PCM
// samples are not 8 or 16 bits wide.
var ErrUnsupportedBitDepth = errors.New("iqsource: unsupported WAV bit depth")

// File is a Source backed by a file on disk: either a raw interleaved
// I/Q byte capture, or a WAV-container capture whose PCM samples are
// rescaled to the [0,255] unsigned I/Q convention. It loops back to the
// start of the data on EOF so callers never observe end-of-stream.
type File struct {
	f       *os.File
	decoder *wav.Decoder
	isWAV   bool
	pcmBuf  *audio.IntBuffer
	pending []byte
}

// Open opens path and, if it is a valid WAV container, seeks to the start
// of its PCM data; otherwise the whole file is treated as a raw,
// interleaved I/Q byte stream.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iqsource: open %s: %w", path, err)
	}

	dec := wav.NewDecoder(f)
	isWAV := dec.IsValidFile()

	src := &File{f: f, decoder: dec, isWAV: isWAV}
	if isWAV {
		if err := dec.FwdToPCM(); err != nil {
			f.Close()
			return nil, fmt.Errorf("iqsource: seek to PCM data in %s: %w", path, err)
		}
		if dec.BitDepth != 8 && dec.BitDepth != 16 {
			f.Close()
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
		}
		src.pcmBuf = &audio.IntBuffer{
			Format: dec.Format(),
			Data:   make([]int, 8192),
		}
	}
	return src, nil
}

// ReadSync fills buf completely, looping back to the start of the
// underlying data whenever it is exhausted.
func (s *File) ReadSync(buf []byte) (int, error) {
	if s.isWAV {
		return s.readWAV(buf)
	}
	return s.readRaw(buf)
}

func (s *File) readRaw(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.f.Read(buf[total:])
		total += n
		if err == io.EOF {
			if _, seekErr := s.f.Seek(0, io.SeekStart); seekErr != nil {
				return total, fmt.Errorf("iqsource: rewind: %w", seekErr)
			}
			continue
		}
		if err != nil {
			return total, fmt.Errorf("iqsource: read: %w", err)
		}
	}
	return total, nil
}

func (s *File) readWAV(buf []byte) (int, error) {
	total := 0

	for total < len(buf) {
		if len(s.pending) > 0 {
			n := copy(buf[total:], s.pending)
			s.pending = s.pending[n:]
			total += n
			continue
		}

		n, err := s.decoder.PCMBuffer(s.pcmBuf)
		if err == io.EOF || n == 0 {
			if err := s.decoder.FwdToPCM(); err != nil {
				return total, fmt.Errorf("iqsource: rewind WAV: %w", err)
			}
			continue
		}
		if err != nil {
			return total, fmt.Errorf("iqsource: decode WAV PCM: %w", err)
		}

		s.pending = make([]byte, n)
		for i := 0; i < n; i++ {
			s.pending[i] = sampleToIQByte(s.pcmBuf.Data[i], s.decoder.BitDepth)
		}
	}
	return total, nil
}

// sampleToIQByte rescales a decoded PCM sample to the unsigned I/Q byte
// convention centered on 127.5.
func sampleToIQByte(sample int, bitDepth uint16) byte {
	if bitDepth == 8 {
		return byte(sample)
	}
	// 16-bit signed sample: take the high byte and shift into [0,255].
	return byte((sample >> 8) + 128)
}

// Close releases the underlying file.
func (s *File) Close() error {
	return s.f.Close()
}
