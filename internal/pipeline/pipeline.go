// Package pipeline wires the tuner-facing I/Q source, the two SPSC
// rings, the FM demodulator, the audio sink, and the display together,
// and owns their lifecycle.
package pipeline

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"aethersdr/internal/audiosink"
	"aethersdr/internal/config"
	"aethersdr/internal/display"
	"aethersdr/internal/dsp"
	"aethersdr/internal/iqsource"
	"aethersdr/internal/ring"
	"aethersdr/internal/spectrum"
)

// Driver owns the I/Q source, both rings, the demodulator, the audio
// sink, and the display window for the lifetime of one receiver run.
type Driver struct {
	opts   *config.Options
	source iqsource.Source

	audioRing *ring.Ring
	guiRing   *ring.Ring

	reader *audiosink.PullReader
	sink   *audiosink.Sink

	window *display.Window

	run          atomic.Bool
	producerDone chan struct{}

	pushRetrySleep time.Duration
	guiScratch     []byte
}

// New wires a Driver from opts, reading I/Q from source and rendering
// through renderer. The audio sink is not started until Start is called.
func New(opts *config.Options, source iqsource.Source, renderer display.Renderer) (*Driver, error) {
	audioRing, err := ring.New(opts.AudioRingBytes)
	if err != nil {
		return nil, fmt.Errorf("pipeline: audio ring: %w", err)
	}
	guiRing, err := ring.New(opts.GUIRingBytes)
	if err != nil {
		return nil, fmt.Errorf("pipeline: gui ring: %w", err)
	}

	if !opts.RateIsExactMultiple() {
		log.Printf("pipeline: warning: sample rate %d Hz is not an exact multiple of audio rate %d Hz; effective audio rate will be %d Hz",
			opts.SampleRateHz, opts.AudioRateHz, opts.EffectiveAudioRateHz())
	}
	decimation := opts.Decimation()

	demod := dsp.NewDemodulator(decimation, dsp.NewDeemphasis(opts.AudioRateHz, opts.DeemphTau))
	reader := audiosink.NewPullReader(audioRing, demod, decimation)

	window := display.NewWindow(renderer, 1024, 600, opts.CenterFreqHz, opts.SampleRateHz)

	d := &Driver{
		opts:           opts,
		source:         source,
		audioRing:      audioRing,
		guiRing:        guiRing,
		reader:         reader,
		window:         window,
		producerDone:   make(chan struct{}),
		pushRetrySleep: time.Duration(opts.PushRetrySleep) * time.Microsecond,
		guiScratch:     make([]byte, opts.ReadBufSize),
	}
	d.run.Store(true)
	return d, nil
}

// Start opens the audio sink and spawns the producer goroutine. Start
// must be called exactly once.
func (d *Driver) Start() error {
	sink, err := audiosink.NewSink(d.opts.EffectiveAudioRateHz(), d.reader)
	if err != nil {
		return fmt.Errorf("pipeline: audio sink init: %w", err)
	}
	d.sink = sink
	d.sink.Play()

	go d.produce()
	return nil
}

// produce is the producer thread: it blocks on source reads, pushes
// into the audio ring with a sleep-retry loop gated on the run flag,
// then makes a best-effort, drop-on-full push into the GUI ring.
func (d *Driver) produce() {
	defer close(d.producerDone)

	buf := make([]byte, d.opts.ReadBufSize)
	for d.run.Load() {
		n, err := d.source.ReadSync(buf)
		if err != nil {
			log.Printf("pipeline: producer read failed, exiting: %v", err)
			return
		}
		chunk := buf[:n]

		for !d.audioRing.Push(chunk) {
			if !d.run.Load() {
				return
			}
			time.Sleep(d.pushRetrySleep)
		}

		d.guiRing.Push(chunk) // best-effort, visualization is non-authoritative
	}
}

// RenderFrame pops whatever the GUI ring currently holds, recomputes the
// spectrum over it, and draws one frame. It is meant to be called once
// per render tick from the GUI thread.
func (d *Driver) RenderFrame(fftN int) {
	n := d.guiRing.Pop(d.guiScratch)
	iq := d.guiScratch[:n]

	var mags []float64
	if n >= 2*fftN {
		mags = spectrum.Magnitudes(iq, fftN)
	}

	d.window.Draw(iq, mags)
}

// ShouldClose reports whether the display wants to close.
func (d *Driver) ShouldClose() bool {
	return d.window.ShouldClose()
}

// Stop lowers the run flag, waits for the producer to exit, closes the
// I/Q source, and halts the audio sink. It must be called before the
// demodulator and rings it references go out of scope.
func (d *Driver) Stop() error {
	d.run.Store(false)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-d.producerDone
	}()
	wg.Wait()

	if err := d.source.Close(); err != nil {
		log.Printf("pipeline: error closing I/Q source: %v", err)
	}
	if d.sink != nil {
		if err := d.sink.Close(); err != nil {
			return fmt.Errorf("pipeline: audio sink close: %w", err)
		}
	}
	return nil
}
