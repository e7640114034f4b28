package report

import "fmt"

// FormatHours renders fractional hours as "{H}h {M}m". Minute rounding
// carries into the hour boundary: 7.999 formats as "8h 0m", never "7h 60m".
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}

	h := int(hours)
	m := int((hours-float64(h))*60 + 0.5)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
