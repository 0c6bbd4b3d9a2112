// Package tuner wraps a USB DVB-T/RTL2832U dongle behind a small,
// exclusively-owned handle: open, configure once, then block on
// synchronous reads until the caller closes it.
package tuner

import (
	"errors"
	"fmt"
	"log"
	"time"

	rtl "github.com/jpoirier/gortlsdr"
)

// ErrDeviceOpenFailed wraps a failure to claim the USB device.
var ErrDeviceOpenFailed = errors.New("tuner: device open failed")

// ErrConfigurationFailed wraps a fatal failure while configuring the
// device (sample rate, gain mode, center frequency, or buffer reset).
var ErrConfigurationFailed = errors.New("tuner: configuration failed")

// ErrDeviceReadFailed wraps a hard failure from a synchronous read.
var ErrDeviceReadFailed = errors.New("tuner: device read failed")

// pllLockDelay is the settling time after changing the sample rate,
// observed empirically on RTL2832U hardware.
const pllLockDelay = 50 * time.Millisecond

// Handle is an exclusively-owned wrapper over an open tuner device.
// Copying a Handle is forbidden; pass it by pointer or move it.
type Handle struct {
	dev    *rtl.Context
	closed bool
}

// Open claims the USB device at index and returns an exclusively-owned
// handle, or a wrapped ErrDeviceOpenFailed.
func Open(index int) (*Handle, error) {
	dev, err := rtl.Open(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: %v", ErrDeviceOpenFailed, index, err)
	}
	return &Handle{dev: dev}, nil
}

// Configure sets the sample rate, waits for the PLL to lock, switches to
// manual gain, applies gainDB (converted to tenths of a dB), tunes to
// centerFreqHz, and resets the driver's internal buffer. Failure to set
// the specific gain value is logged as a warning and does not fail the
// call; every other failure is fatal and returned wrapped in
// ErrConfigurationFailed.
func (h *Handle) Configure(sampleRateHz, centerFreqHz, gainDB int) error {
	if err := h.dev.SetSampleRate(sampleRateHz); err != nil {
		return fmt.Errorf("%w: set sample rate %d: %v", ErrConfigurationFailed, sampleRateHz, err)
	}

	time.Sleep(pllLockDelay)

	if err := h.dev.SetTunerGainMode(true); err != nil {
		return fmt.Errorf("%w: set manual gain mode: %v", ErrConfigurationFailed, err)
	}

	if err := h.dev.SetTunerGain(gainDB * 10); err != nil {
		log.Printf("tuner: warning: set tuner gain %d dB failed: %v", gainDB, err)
	}

	if err := h.dev.SetCenterFreq(centerFreqHz); err != nil {
		return fmt.Errorf("%w: set center frequency %d: %v", ErrConfigurationFailed, centerFreqHz, err)
	}

	if err := h.dev.ResetBuffer(); err != nil {
		return fmt.Errorf("%w: reset buffer: %v", ErrConfigurationFailed, err)
	}

	return nil
}

// ReadSync blocks until buf is filled, or returns the number of bytes
// actually read along with a wrapped ErrDeviceReadFailed. A short read
// (n < len(buf)) with a nil error is not a hard failure: it is logged as
// a warning and the partially-filled buffer is returned as-is, leaving
// the decision of what to do with the short buffer to the caller.
func (h *Handle) ReadSync(buf []byte) (int, error) {
	n, err := h.dev.ReadSync(buf, len(buf))
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrDeviceReadFailed, err)
	}
	if n != len(buf) {
		log.Printf("tuner: warning: short read (%d / %d bytes)", n, len(buf))
	}
	return n, nil
}

// Close closes the device exactly once. Subsequent calls are no-ops.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.dev.Close()
}
