package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RotateDeg rotates v counter-clockwise by deg degrees.
func RotateDeg(v cp.Vector, deg float64) cp.Vector {
	return v.Rotate(cp.ForAngle(deg * math.Pi / 180))
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < 1e-9 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// AngleBetweenDeg returns the unsigned angle between a and b in degrees.
func AngleBetweenDeg(a, b cp.Vector) float64 {
	la, lb := a.Length(), b.Length()
	if la < 1e-9 || lb < 1e-9 {
		return 0
	}
	c := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(c) * 180 / math.Pi
}
