package orbit

import (
	omath "github.com/Faultbox/orrery/pkg/math"
)

// DefaultAlignmentThreshold is the cross-product magnitude below which the
// bodies count as collinear. It is a tuning knob, not a physical constant.
const DefaultAlignmentThreshold = 0.01

// IsAligned reports whether sun, earth and moon are approximately collinear
// as seen from the earth, using DefaultAlignmentThreshold.
func IsAligned(sun, earth, moon omath.Vec3) bool {
	return IsAlignedWithin(sun, earth, moon, DefaultAlignmentThreshold)
}

// IsAlignedWithin is IsAligned with an explicit threshold. The test is
// |(sun-earth) x (moon-earth)| < threshold, which is twice the area of the
// sun-earth-moon triangle. It ignores which side of the earth the moon is on.
func IsAlignedWithin(sun, earth, moon omath.Vec3, threshold float32) bool {
	sunToEarth := sun.Sub(earth)
	earthToMoon := moon.Sub(earth)
	return sunToEarth.Cross(earthToMoon).Length() < threshold
}

// MoonBetween reports whether the moon's projection onto the sun-earth axis
// falls strictly between the sun and the earth. Combined with IsAligned this
// is the eclipse geometry: the moon in front of the earth as seen from the sun.
func MoonBetween(sun, earth, moon omath.Vec3) bool {
	axis := earth.Sub(sun)
	lenSq := axis.Dot(axis)
	if lenSq == 0 {
		return false
	}
	t := moon.Sub(sun).Dot(axis) / lenSq
	return t > 0 && t < 1
}

// MoonInFrontLegacy is the front/behind test of the original demo:
// |sun-earth| - |sun-moon| < |sun-earth|. It holds whenever the moon is not
// exactly on the sun, so it cannot tell front from behind. It is kept to
// document that behaviour; use MoonBetween instead.
func MoonInFrontLegacy(sun, earth, moon omath.Vec3) bool {
	sunToEarth := sun.Sub(earth).Length()
	sunToMoon := sun.Sub(moon).Length()
	return sunToEarth-sunToMoon < sunToEarth
}
