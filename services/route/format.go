package route

import (
	"fmt"
	"math"
	"strconv"
)

// FormatDistance renders meters, switching to kilometers at 1000 m.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return strconv.FormatFloat(meters, 'f', -1, 64) + " m"
}

// FormatDuration renders minutes as "1h 15min" or "45 min".
func FormatDuration(minutes float64) string {
	if minutes < 0 {
		minutes = 0
	}
	h := int(math.Floor(minutes / 60))
	m := int(math.Floor(math.Mod(minutes, 60)))
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%d min", m)
}

// millisToMinutes converts turn instruction times.
func millisToMinutes(ms float64) float64 {
	return ms / 60000
}
