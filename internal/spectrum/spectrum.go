// Package spectrum turns a block of raw I/Q bytes into a windowed FFT
// magnitude-in-dB trace, plus the pure screen-geometry math the display
// package needs to draw a frequency grid around it.
package spectrum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"aethersdr/internal/dsp"
)

// Magnitudes converts the first fftN I/Q byte pairs of iq into a
// Hamming-windowed, frequency-shifted magnitude-in-dB spectrum of length
// fftN, with index 0 corresponding to centerFreq-sampleRate/2 and index
// fftN-1 to just below centerFreq+sampleRate/2.
func Magnitudes(iq []byte, fftN int) []float64 {
	samples := make([]complex128, fftN)
	for i := 0; i < fftN; i++ {
		ib, qb := iq[2*i], iq[2*i+1]
		w := dsp.HammingWindow(i, fftN)
		samples[i] = complex(
			((float64(ib)-127.5)/127.5)*w,
			((float64(qb)-127.5)/127.5)*w,
		)
	}

	fft := fourier.NewCmplxFFT(fftN)
	coeffs := fft.Coefficients(nil, samples)

	mags := make([]float64, fftN)
	for i, c := range coeffs {
		shifted := (i + fftN/2) % fftN
		mags[shifted] = 20 * math.Log10(cmplx.Abs(c)+1e-12)
	}
	return mags
}

// FrequencyGridLines returns the frequencies, spaced step apart, that
// fall within [centerHz-rateHz/2, centerHz+rateHz/2], starting at the
// first multiple of step at or above the band's lower edge.
func FrequencyGridLines(centerHz, rateHz, step int) []int {
	if step <= 0 {
		return nil
	}
	startFreq := centerHz - rateHz/2
	endFreq := centerHz + rateHz/2

	gridStart := ((startFreq + step - 1) / step) * step

	var lines []int
	for f := gridStart; f <= endFreq; f += step {
		lines = append(lines, f)
	}
	return lines
}

// FrequencyX maps freqHz to a screen x-coordinate within [0, width],
// given the display's center frequency and sample rate.
func FrequencyX(freqHz, centerHz, rateHz int, width float64) float64 {
	frac := float64(freqHz-centerHz)/float64(rateHz) + 0.5
	return frac * width
}

// DBGridLines returns the dB levels the horizontal grid draws a line at:
// minDB to maxDB inclusive, every step dB.
func DBGridLines(minDB, maxDB, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var lines []float64
	for db := minDB; db <= maxDB; db += step {
		lines = append(lines, db)
	}
	return lines
}

// DBY maps a dB value to a screen y-coordinate between bottomY (at minDB)
// and bottomY-height (at maxDB).
func DBY(db, minDB, maxDB, bottomY, height float64) float64 {
	normalized := (db - minDB) / (maxDB - minDB)
	return bottomY - normalized*height
}

// Point is a single vertex of the magnitude trace polyline.
type Point struct {
	X, Y float64
}

// TracePoints lays the magnitude trace out across width with equal
// horizontal spacing, clamping every value to [minDB, maxDB] before
// mapping it to a y-coordinate.
func TracePoints(magnitudes []float64, minDB, maxDB, width, bottomY, height float64) []Point {
	n := len(magnitudes)
	if n == 0 {
		return nil
	}
	points := make([]Point, n)
	xStep := width
	if n > 1 {
		xStep = width / float64(n-1)
	}
	for i, db := range magnitudes {
		clamped := math.Max(minDB, math.Min(maxDB, db))
		points[i] = Point{
			X: float64(i) * xStep,
			Y: DBY(clamped, minDB, maxDB, bottomY, height),
		}
	}
	return points
}
