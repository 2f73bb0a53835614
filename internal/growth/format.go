package growth

import "fmt"

// Missing measurements render as an em-dash, never as "0" — a zero would
// imply a real reading.
const missingPlaceholder = "—"

// FormatHeight renders an optional height with one decimal place.
func FormatHeight(v *float64) string {
	if v == nil {
		return missingPlaceholder
	}
	return FormatHeightValue(*v)
}

// FormatHeightValue renders a height with one decimal place.
func FormatHeightValue(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
