package display

import "testing"

func TestWindowDrawCallsBeginAndEnd(t *testing.T) {
	r := &NopRenderer{}
	w := NewWindow(r, 1024, 600, 98_400_000, 2_000_000)

	iqBuf := make([]byte, 256)
	for i := range iqBuf {
		iqBuf[i] = byte(127 + i%10)
	}
	magnitudes := make([]float64, 64)

	w.Draw(iqBuf, magnitudes)

	if r.Begins != 1 || r.Ends != 1 || r.Clears != 1 {
		t.Fatalf("expected exactly one Begin/End/Clear, got %d/%d/%d", r.Begins, r.Ends, r.Clears)
	}
	if r.Lines == 0 {
		t.Error("expected at least one line to be drawn")
	}
	if len(r.Texts) == 0 {
		t.Error("expected at least one text label to be drawn")
	}
}

func TestWindowShouldCloseDelegatesToRenderer(t *testing.T) {
	r := &NopRenderer{}
	w := NewWindow(r, 800, 480, 100_000_000, 2_000_000)

	if w.ShouldClose() {
		t.Fatal("expected window to stay open before renderer signals close")
	}
	r.Closed = true
	if !w.ShouldClose() {
		t.Fatal("expected window to close once renderer signals close")
	}
}

func TestWindowDrawHandlesEmptyMagnitudes(t *testing.T) {
	r := &NopRenderer{}
	w := NewWindow(r, 640, 400, 98_400_000, 2_000_000)

	// Must not panic on a cold start before any spectrum data has arrived.
	w.Draw(nil, nil)
}
