package rawiq

import "testing"

func TestAmplitudeRange(t *testing.T) {
	cases := []struct {
		b    byte
		want float64
	}{
		{0, -1},
		{255, 1},
	}
	for _, c := range cases {
		got := Amplitude(c.b)
		if diff := got - c.want; diff > 0.01 || diff < -0.01 {
			t.Errorf("Amplitude(%d) = %f, want close to %f", c.b, got, c.want)
		}
	}
}

func TestOffsetsClampToHalfHeight(t *testing.T) {
	buf := []byte{255, 255, 0}
	offsets := Offsets(buf, 10.0, 100) // large volume forces clamping

	for i, off := range offsets {
		if off > 50.0001 || off < -50.0001 {
			t.Errorf("offset %d = %f, expected to be clamped within [-50, 50]", i, off)
		}
	}
}

func TestPointsEvenlySpacedAcrossWidth(t *testing.T) {
	buf := []byte{127, 127, 127, 127}
	points := Points(buf, 1.0, 300, 50, 100)

	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	if points[0].X != 0 || points[3].X != 300 {
		t.Errorf("expected endpoints at x=0 and x=300, got %f and %f", points[0].X, points[3].X)
	}
	// Byte 127 is half a step under the 127.5 midpoint, so the flat trace
	// sits a fraction of a pixel below the center line at y=50.
	want := 50 - Amplitude(127)*50*1.0
	for _, p := range points {
		if p.Y != want {
			t.Errorf("expected flat signal to sit at y=%f, got y=%f", want, p.Y)
		}
	}
}
