package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// NavGrid is the walkable-cell raster of the arena. Cell (0,0) covers
// [0,CellSize) on both axes.
type NavGrid struct {
	CellSize float64
	Width    int
	Height   int
	Blocked  []bool
}

func (g *NavGrid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// IsBlocked treats out-of-bounds cells as blocked.
func (g *NavGrid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Blocked[y*g.Width+x]
}

func (g *NavGrid) Cell(p cp.Vector) (int, int) {
	return int(math.Floor(p.X / g.CellSize)), int(math.Floor(p.Y / g.CellSize))
}

func (g *NavGrid) CellCenter(x, y int) cp.Vector {
	half := g.CellSize * 0.5
	return cp.Vector{X: float64(x)*g.CellSize + half, Y: float64(y)*g.CellSize + half}
}

// Walkable reports whether p lies in an unblocked cell.
func (g *NavGrid) Walkable(p cp.Vector) bool {
	if g == nil || g.CellSize <= 0 {
		return false
	}
	x, y := g.Cell(p)
	return !g.IsBlocked(x, y)
}

var NavGridComponent = NewComponent[NavGrid]()

// NavAgent steers an entity along a grid path. AngularSpeed is in degrees
// per second; Heading is a unit vector.
type NavAgent struct {
	Destination      cp.Vector
	HasDestination   bool
	Path             []cp.Vector
	Speed            float64
	Acceleration     float64
	AngularSpeed     float64
	StoppingDistance float64

	Heading         cp.Vector
	Velocity        cp.Vector
	DesiredVelocity cp.Vector
}

var NavAgentComponent = NewComponent[NavAgent]()
