// Package rawiq implements the pure layout math behind the raw I/Q
// waveform view: mapping bytes to amplitudes and amplitudes to a
// vertically centered, volume-scaled polyline.
package rawiq

// Amplitude maps a raw I/Q byte to the range [-1, 1], centered on 127.5.
func Amplitude(b byte) float64 {
	return (float64(b) - 127.5) / 127.5
}

// Offsets maps every byte in buf to a vertical pixel offset from the
// panel's center line, scaled by volume and clamped to
// [-height/2, height/2]. The caller adds its own center-y coordinate.
func Offsets(buf []byte, volume, height float64) []float64 {
	if len(buf) == 0 {
		return nil
	}
	maxAmplitude := height / 2

	offsets := make([]float64, len(buf))
	for i, b := range buf {
		v := Amplitude(b) * maxAmplitude * volume
		switch {
		case v > maxAmplitude:
			v = maxAmplitude
		case v < -maxAmplitude:
			v = -maxAmplitude
		}
		offsets[i] = v
	}
	return offsets
}

// Point is a single vertex of the raw I/Q trace polyline.
type Point struct {
	X, Y float64
}

// Points lays the raw I/Q trace out across width with equal horizontal
// spacing, converting each byte to a y-coordinate relative to centerY.
func Points(buf []byte, volume, width, centerY, height float64) []Point {
	offsets := Offsets(buf, volume, height)
	if len(offsets) == 0 {
		return nil
	}

	points := make([]Point, len(offsets))
	xStep := width
	if len(offsets) > 1 {
		xStep = width / float64(len(offsets)-1)
	}
	for i, off := range offsets {
		points[i] = Point{X: float64(i) * xStep, Y: centerY - off}
	}
	return points
}
