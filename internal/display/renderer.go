package display

import (
	"fmt"
	"io"
)

// NopRenderer records every call it receives without drawing anything,
// letting Window be exercised in tests without a real graphics toolkit.
type NopRenderer struct {
	Begins, Ends, Clears int
	Lines                int
	Texts                []string
	Closed               bool
}

func (r *NopRenderer) Begin() { r.Begins++ }
func (r *NopRenderer) End()   { r.Ends++ }
func (r *NopRenderer) Clear() { r.Clears++ }

func (r *NopRenderer) Line(x1, y1, x2, y2 float64, rgba RGBA) {
	r.Lines++
}

func (r *NopRenderer) Text(s string, x, y float64, size int, rgba RGBA) {
	r.Texts = append(r.Texts, s)
}

func (r *NopRenderer) MeasureText(s string, size int) float64 {
	return float64(len(s) * size / 2)
}

func (r *NopRenderer) Slider(x, y, w, h float64, label string, value *float64, min, max float64) {
}

func (r *NopRenderer) ShouldClose() bool { return r.Closed }

// TermRenderer is a stdlib-only ASCII fallback: it writes a short
// textual summary of each frame to w instead of drawing pixels. No
// graphics or TUI toolkit is assumed to be linked in.
type TermRenderer struct {
	w      io.Writer
	lines  int
	texts  []string
	closed bool
}

// NewTermRenderer creates a TermRenderer writing to w.
func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{w: w}
}

func (r *TermRenderer) Begin() {
	r.lines = 0
	r.texts = nil
}

func (r *TermRenderer) End() {
	fmt.Fprintf(r.w, "frame: %d lines, labels: %v\n", r.lines, r.texts)
}

func (r *TermRenderer) Clear() {}

func (r *TermRenderer) Line(x1, y1, x2, y2 float64, rgba RGBA) {
	r.lines++
}

func (r *TermRenderer) Text(s string, x, y float64, size int, rgba RGBA) {
	r.texts = append(r.texts, s)
}

func (r *TermRenderer) MeasureText(s string, size int) float64 {
	return float64(len(s) * size / 2)
}

func (r *TermRenderer) Slider(x, y, w, h float64, label string, value *float64, min, max float64) {
}

// Close marks the renderer's window as wanting to close. Intended for
// the signal-handling path in main.
func (r *TermRenderer) Close() { r.closed = true }

func (r *TermRenderer) ShouldClose() bool { return r.closed }
