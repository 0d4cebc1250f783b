package engine

import "math"

// Maximum serve-probability swing per clutch rating point at full pressure,
// in percentage points. At the rating extremes the transform tops out at a
// five-point swing, matching observed top-20 behavior on the biggest points.
const clutchSwingPerPoint = 1.0

// ClutchAdjustment converts a clutch rating and a pressure score into a
// signed percentage-point shift of the server's win probability. The
// square-root curve makes low pressures count proportionally less while high
// pressures approach the full effect, and normalized pressure saturates at 1
// so the swing never exceeds the ceiling however large the score grows.
// Odd-symmetric in the rating; zero rating or zero pressure yields zero.
func ClutchAdjustment(clutch, pressure float64) float64 {
	if pressure <= 0 || clutch == 0 {
		return 0
	}
	normalized := pressure / MaxPressure
	if normalized > 1 {
		normalized = 1
	}
	return clutch * clutchSwingPerPoint * math.Sqrt(normalized)
}
