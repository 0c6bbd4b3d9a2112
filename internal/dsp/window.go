package dsp

import "math"

// HammingWindow evaluates the classic Hamming window coefficient at
// sample n of an N-point window. It is used to taper a block of samples
// before an FFT.
func HammingWindow(n, bigN int) float64 {
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(bigN-1))
}
