// Command aethersdr tunes a USB DVB-T dongle to a wide-band FM station,
// plays the demodulated audio, and renders the raw I/Q waveform and
// magnitude spectrum on screen.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aethersdr/internal/cli"
	"aethersdr/internal/display"
	"aethersdr/internal/iqsource"
	"aethersdr/internal/pipeline"
	"aethersdr/internal/tuner"
)

const spectrumFFTSize = 1024

func main() {
	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	source, err := openSource(opts.InputPath, opts.SampleRateHz, opts.CenterFreqHz, opts.GainDB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aethersdr:", err)
		os.Exit(1)
	}

	renderer := display.NewTermRenderer(os.Stdout)
	driver, err := pipeline.New(opts, source, renderer)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aethersdr:", err)
		os.Exit(1)
	}

	if err := driver.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "aethersdr:", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			renderer.Close()
		case <-ticker.C:
			driver.RenderFrame(spectrumFFTSize)
		}
		if driver.ShouldClose() {
			break
		}
	}

	if err := driver.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, "aethersdr:", err)
		os.Exit(1)
	}
}

// openSource picks a file-backed I/Q source when inPath is set, or
// opens and configures a live tuner otherwise.
func openSource(inPath string, sampleRateHz, centerFreqHz, gainDB int) (iqsource.Source, error) {
	if inPath != "" {
		return iqsource.Open(inPath)
	}

	h, err := tuner.Open(0)
	if err != nil {
		return nil, err
	}
	if err := h.Configure(sampleRateHz, centerFreqHz, gainDB); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}
