// Package cli parses the receiver's command-line options.
package cli

import (
	"flag"
	"fmt"
	"io"

	"aethersdr/internal/config"
)

// ErrHelpRequested is returned by Parse when -h was given; the caller
// should exit 0 without further action.
var ErrHelpRequested = flag.ErrHelp

// Parse parses args (excluding the program name) into a fresh
// config.Options, applying the CLI's documented defaults first. usage,
// if non-nil, receives the usage text on a parse error or -h.
func Parse(args []string, usage io.Writer) (*config.Options, error) {
	opts := config.New()
	if usage == nil {
		usage = io.Discard
	}

	fs := flag.NewFlagSet("aethersdr", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() {
		fmt.Fprintln(usage, "Usage: aethersdr [options]")
		fmt.Fprintln(usage)
		fmt.Fprintln(usage, "Tunes a USB DVB-T dongle to a wide-band FM station and plays it back,")
		fmt.Fprintln(usage, "rendering the raw I/Q waveform and magnitude spectrum on screen.")
		fmt.Fprintln(usage)
		fmt.Fprintln(usage, "Options:")
		fs.PrintDefaults()
	}

	sampleMHz := fs.Float64("s", float64(opts.SampleRateHz)/1e6, "sample rate in MHz")
	freqMHz := fs.Float64("f", float64(opts.CenterFreqHz)/1e6, "center frequency in MHz")
	gainDB := fs.Int("g", opts.GainDB, "tuner gain in dB")
	inPath := fs.String("in", "", "read I/Q from a file instead of a live tuner")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.SampleRateHz = int(*sampleMHz * 1e6)
	opts.CenterFreqHz = int(*freqMHz * 1e6)
	opts.GainDB = *gainDB
	opts.InputPath = *inPath

	return opts, nil
}
