package gizmo

import (
	"math"
	"regexp"
	"strconv"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RotatePoint rotates p about c by deg degrees. Positive angles turn
// clockwise on screen because Y grows downward.
func RotatePoint(p, c Vec2, deg float64) Vec2 {
	if deg == 0 {
		return p
	}
	sin, cos := sincosDeg(deg)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Vec2{
		X: dx*cos - dy*sin + c.X,
		Y: dx*sin + dy*cos + c.Y,
	}
}

// sincosDeg returns exact values at quarter turns so that rotating by 90 or
// 180 degrees and back again lands on the original point.
func sincosDeg(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch int(normalizeDegrees(deg) / 90) {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		default:
			return -1, 0
		}
	}
	return math.Sincos(DegToRad(deg))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec2) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)/2,
		Y: a.Y + (b.Y-a.Y)/2,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// WrapDegrees normalizes deg into (-180, 180].
func WrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// normalizeDegrees maps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

var rotationPattern = regexp.MustCompile(`-?[0-9]+(\.[0-9]+)?deg`)

// ParseRotation extracts the first "<number>deg" token from a CSS-style
// transform string such as "translate(4px, 2px) rotate(-12.5deg)".
// Returns 0 when no token is present or it does not parse.
func ParseRotation(transform string) float64 {
	tok := rotationPattern.FindString(transform)
	if tok == "" {
		return 0
	}
	v, err := strconv.ParseFloat(tok[:len(tok)-len("deg")], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sanitizeDegrees returns 0 for NaN or infinite angles.
func sanitizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	return deg
}
