package dsp

import "math"

// Demodulator implements the polar-discriminator FM demodulator: a
// stateful transformer from raw interleaved I/Q bytes to decimated,
// de-emphasized, amplified int16 PCM.
//
// State carried across Process calls: prevSample is the last I/Q sample
// seen (initialized to 1+0j, the origin of the unit circle used by the
// phase-difference calculation), counter/sum accumulate the decimation
// window, and deemph holds the de-emphasis filter's running output.
type Demodulator struct {
	decimation int
	deemph     *Deemphasis

	prevSample complex128
	counter    int
	sum        float64
}

// NewDemodulator creates a demodulator that averages phase differences
// over windows of decimation input samples and de-emphasizes the result
// with deemph. decimation below 1 is clamped to 1.
func NewDemodulator(decimation int, deemph *Deemphasis) *Demodulator {
	if decimation < 1 {
		decimation = 1
	}
	return &Demodulator{
		decimation: decimation,
		deemph:     deemph,
		prevSample: complex(1, 0),
	}
}

// Process demodulates a run of interleaved unsigned I/Q bytes into signed
// 16-bit PCM. A trailing unpaired byte, if any, is discarded. Output is
// preallocated to the expected size |iq|/(2*decimation).
func (d *Demodulator) Process(iq []byte) []int16 {
	pairs := len(iq) / 2
	out := make([]int16, 0, pairs/d.decimation)

	for i := 0; i < pairs; i++ {
		ib, qb := iq[2*i], iq[2*i+1]
		s := complex((float64(ib)-127.5)/127.5, (float64(qb)-127.5)/127.5)

		conjPrev := complex(real(d.prevSample), -imag(d.prevSample))
		delta := s * conjPrev
		phi := math.Atan2(imag(delta), real(delta))
		d.prevSample = s

		d.sum += phi
		d.counter++
		if d.counter == d.decimation {
			avg := d.sum / float64(d.decimation)
			d.sum = 0
			d.counter = 0

			y := d.deemph.Filter(avg)
			out = append(out, clampInt16(y*16000))
		}
	}
	return out
}

func clampInt16(x float64) int16 {
	switch {
	case x > 32767:
		return 32767
	case x < -32768:
		return -32768
	default:
		return int16(x)
	}
}
