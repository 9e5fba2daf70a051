package brain

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
)

// Rand is the only source of randomness the controller uses.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded generator. Two controllers built with the same
// seed and fed the same inputs make the same decisions.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randRange returns a value in [lo, hi).
func randRange(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// insideUnitCircle returns a point uniformly distributed in the unit disk.
func insideUnitCircle(r Rand) cp.Vector {
	angle := r.Float64() * 2 * math.Pi
	radius := math.Sqrt(r.Float64())
	return cp.ForAngle(angle).Mult(radius)
}
