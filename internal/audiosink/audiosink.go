// Package audiosink adapts the audio ring and FM demodulator to the
// pull-mode contract an audio output device drives: give me N frames,
// right now, fully populated.
package audiosink

import (
	"encoding/binary"
	"io"
	"log"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"aethersdr/internal/dsp"
	"aethersdr/internal/ring"
)

// silenceByte is the neutral I/Q byte (complex zero modulo rounding)
// used to pad a deficit when the ring can't supply enough bytes.
const silenceByte = 127

// PullReader implements io.Reader over the audio ring and demodulator,
// reproducing the pipeline driver's data callback exactly: compute how
// many raw I/Q bytes frames worth of decimated audio needs, pop them
// from the ring, pad any deficit with silenceByte, demodulate, and
// write the resulting int16 mono PCM little-endian into the caller's
// buffer.
type PullReader struct {
	ring       *ring.Ring
	demod      *dsp.Demodulator
	decimation int

	underflowBytes atomic.Uint64
	frameMismatch  atomic.Uint64
}

// NewPullReader creates a PullReader decimating by decimation and
// demodulating through demod.
func NewPullReader(r *ring.Ring, demod *dsp.Demodulator, decimation int) *PullReader {
	if decimation < 1 {
		decimation = 1
	}
	return &PullReader{ring: r, demod: demod, decimation: decimation}
}

// Read fills p with as many whole int16 mono samples as fit, always
// filling the buffer completely: a ring underflow is padded with
// silence rather than returned as a short read.
func (p *PullReader) Read(p16le []byte) (int, error) {
	frames := len(p16le) / 2
	if frames == 0 {
		return 0, nil
	}

	bytesNeeded := frames * p.decimation * 2
	iq := make([]byte, bytesNeeded)
	n := p.ring.Pop(iq)
	if n < bytesNeeded {
		deficit := bytesNeeded - n
		for i := n; i < bytesNeeded; i++ {
			iq[i] = silenceByte
		}
		p.underflowBytes.Add(uint64(deficit))
	}

	samples := p.demod.Process(iq)
	if len(samples) != frames {
		p.frameMismatch.Add(1)
		log.Printf("audiosink: demodulator produced %d frames, %d requested", len(samples), frames)
		if len(samples) > frames {
			samples = samples[:frames]
		}
	}

	for i, s := range samples {
		binary.LittleEndian.PutUint16(p16le[2*i:], uint16(s))
	}
	for i := len(samples); i < frames; i++ {
		binary.LittleEndian.PutUint16(p16le[2*i:], 0)
	}
	return frames * 2, nil
}

// UnderflowBytes reports the cumulative number of I/Q bytes padded with
// silence because the ring had too little data when asked.
func (p *PullReader) UnderflowBytes() uint64 {
	return p.underflowBytes.Load()
}

// Sink wraps an oto audio context and player around a PullReader,
// playing mono signed-16 PCM at a fixed rate.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewSink opens the platform audio device at sampleRateHz, mono,
// signed-16 little-endian, reading PCM from r.
func NewSink(sampleRateHz int, r io.Reader) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRateHz,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &Sink{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

// Play starts playback; it does not block.
func (s *Sink) Play() {
	s.player.Play()
}

// Close stops playback. The pipeline driver must call this before the
// demodulator and ring it reads from are destroyed.
func (s *Sink) Close() error {
	return s.player.Close()
}
