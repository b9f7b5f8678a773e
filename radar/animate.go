package radar

import "math"

const (
	// Easing is the fraction of the remaining distance covered per frame.
	Easing = 0.08
	// SnapThreshold is the distance under which an axis jumps to its target.
	SnapThreshold = 0.005
)

// Step advances animated one frame toward target and reports whether any axis
// still moved. Axes within SnapThreshold are set exactly to their target.
func Step(animated *Values, target Values) (moving bool) {
	for i := range animated {
		diff := target[i] - animated[i]
		if math.Abs(diff) > SnapThreshold {
			animated[i] += diff * Easing
			moving = true
		} else {
			animated[i] = target[i]
		}
	}
	return moving
}
