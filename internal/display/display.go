// Package display draws the raw I/Q waveform and FFT magnitude spectrum
// behind an immediate-mode Renderer seam, so the pipeline never depends
// directly on a particular graphics toolkit.
package display

import (
	"aethersdr/internal/rawiq"
	"aethersdr/internal/spectrum"
)

// RGBA is a packed 8-bit-per-channel color.
type RGBA = [4]uint8

var (
	colorGray  = RGBA{200, 200, 200, 255}
	colorRed   = RGBA{230, 30, 30, 255}
	colorBlue  = RGBA{0, 90, 220, 255}
	colorGreen = RGBA{0, 150, 60, 255}
	colorDark  = RGBA{60, 60, 60, 255}
)

// Renderer is the immediate-mode drawing seam the window draws through.
// Each frame starts with Begin and finishes with End; the drawing calls
// in between may be made any number of times.
type Renderer interface {
	Begin()
	End()
	Clear()
	Line(x1, y1, x2, y2 float64, rgba RGBA)
	Text(s string, x, y float64, size int, rgba RGBA)
	MeasureText(s string, size int) float64
	Slider(x, y, w, h float64, label string, value *float64, min, max float64)
	ShouldClose() bool
}

// Window composes a Renderer with the spectrum and raw-I/Q pure-math
// helpers to reproduce the original layout: a top bar with a volume
// slider, a raw-I/Q pane, and a spectrum pane beneath it.
type Window struct {
	Renderer Renderer

	Width, Height int
	CenterFreqHz  int
	SampleRateHz  int

	Volume float64
}

// NewWindow creates a Window of the given size, driven by r.
func NewWindow(r Renderer, width, height, centerFreqHz, sampleRateHz int) *Window {
	return &Window{
		Renderer:     r,
		Width:        width,
		Height:       height,
		CenterFreqHz: centerFreqHz,
		SampleRateHz: sampleRateHz,
		Volume:       1.0,
	}
}

// Draw renders one frame from the current raw I/Q buffer and magnitude
// spectrum.
func (w *Window) Draw(iqBuf []byte, magnitudes []float64) {
	r := w.Renderer
	r.Begin()
	r.Clear()

	width := float64(w.Width)

	const uiY = 10.0
	const uiHeight = 20.0
	uiYEnd := uiHeight + 2*uiY

	title := "AETHER SDR"
	r.Text(title, 10, uiY, int(uiHeight), colorDark)

	sliderWidth := 120.0
	sliderX := width - sliderWidth - 50
	r.Slider(sliderX, uiY, sliderWidth, uiHeight, "Volume", &w.Volume, 0, 1)

	r.Line(0, uiYEnd, width, uiYEnd, colorDark)

	height := float64(w.Height)
	graphMiddle := (height-uiYEnd)/2 + uiYEnd

	rawIQBottom, rawIQTop := graphMiddle, uiYEnd
	fftBottom, fftTop := height, graphMiddle

	w.drawRawIQ(iqBuf, width, rawIQBottom, rawIQTop)
	w.drawSpectrum(magnitudes, width, fftBottom, fftTop)

	r.Text("Raw IQ Samples", 10, rawIQTop+10, 20, colorGreen)
	r.Text("FFT Magnitude (dB)", 10, fftTop+10, 20, RGBA{0, 0, 140, 255})

	r.End()
}

// ShouldClose reports whether the underlying renderer's window wants to close.
func (w *Window) ShouldClose() bool {
	return w.Renderer.ShouldClose()
}

func (w *Window) drawRawIQ(buf []byte, width, bottomY, topY float64) {
	if len(buf) < 2 {
		return
	}
	height := bottomY - topY
	centerY := topY + height/2

	points := rawiq.Points(buf, w.Volume, width, centerY, height)
	for i := 1; i < len(points); i++ {
		w.Renderer.Line(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, colorGreen)
	}
}

func (w *Window) drawSpectrum(magnitudes []float64, width, bottomY, topY float64) {
	if len(magnitudes) < 2 {
		return
	}
	const minDB, maxDB = -40.0, 60.0
	const freqStep = 500_000
	height := bottomY - topY

	for _, f := range spectrum.FrequencyGridLines(w.CenterFreqHz, w.SampleRateHz, freqStep) {
		x := spectrum.FrequencyX(f, w.CenterFreqHz, w.SampleRateHz, width)
		w.Renderer.Line(x, topY, x, bottomY, colorGray)

		label := formatMHz(f)
		textWidth := w.Renderer.MeasureText(label, 10)
		textX := clampFloat(x-textWidth/2, 5, width-textWidth-5)
		w.Renderer.Text(label, textX, bottomY-25, 10, colorDark)
	}

	for _, db := range spectrum.DBGridLines(minDB, maxDB, 20) {
		y := spectrum.DBY(db, minDB, maxDB, bottomY, height)
		w.Renderer.Line(0, y, width, y, colorGray)
		w.Renderer.Text(formatDB(db), 5, y-15, 10, colorDark)
	}

	centerX := width / 2
	w.Renderer.Line(centerX, topY, centerX, bottomY, colorRed)
	centerLabel := "CF: " + formatCenterFreqMHz(w.CenterFreqHz) + " MHz"
	centerLabelWidth := w.Renderer.MeasureText(centerLabel, 10)
	w.Renderer.Text(centerLabel, centerX-centerLabelWidth/2, bottomY-35, 10, RGBA{150, 0, 0, 255})

	points := spectrum.TracePoints(magnitudes, minDB, maxDB, width, bottomY, height)
	for i := 1; i < len(points); i++ {
		w.Renderer.Line(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, colorBlue)
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
