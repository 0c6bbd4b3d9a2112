package display

import "strconv"

// formatMHz renders a frequency in Hz as a two-decimal MHz string,
// matching the "%.2f" grid label the original layout used.
func formatMHz(hz int) string {
	return strconv.FormatFloat(float64(hz)/1e6, 'f', 2, 64)
}

// formatCenterFreqMHz renders a frequency in Hz as a three-decimal MHz
// string, matching the "CF: %.3f MHz" center-frequency label.
func formatCenterFreqMHz(hz int) string {
	return strconv.FormatFloat(float64(hz)/1e6, 'f', 3, 64)
}

// formatDB renders a dB level as an integer-with-suffix label.
func formatDB(db float64) string {
	return strconv.Itoa(int(db)) + " dB"
}
