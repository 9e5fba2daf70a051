package system

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

const defaultNavCellSize = 1.0

type gridPos struct {
	x int
	y int
}

// BuildNavGrid rasterizes every static body of w into a grid covering the
// level bounds.
func BuildNavGrid(w *ecs.World, cellSize float64) (component.NavGrid, bool) {
	bounds, ok := levelBounds(w)
	if !ok {
		return component.NavGrid{}, false
	}
	if cellSize <= 0 {
		cellSize = defaultNavCellSize
	}
	gridW := int(math.Ceil(bounds.Width / cellSize))
	gridH := int(math.Ceil(bounds.Height / cellSize))
	if gridW <= 0 || gridH <= 0 {
		return component.NavGrid{}, false
	}
	return component.NavGrid{
		CellSize: cellSize,
		Width:    gridW,
		Height:   gridH,
		Blocked:  buildBlockedGrid(w, gridW, gridH, cellSize),
	}, true
}

func levelBounds(w *ecs.World) (component.LevelBounds, bool) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	return *bounds, true
}

func navGrid(w *ecs.World) (*component.NavGrid, bool) {
	e, ok := ecs.First(w, component.NavGridComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.NavGridComponent.Kind())
}

func buildBlockedGrid(w *ecs.World, gridW, gridH int, gridSize float64) []bool {
	blocked := make([]bool, gridW*gridH)
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if !body.Static {
			return
		}

		minX, minY, maxX, maxY := bodyAABB(transform, body)
		startX := int(math.Floor(minX / gridSize))
		startY := int(math.Floor(minY / gridSize))
		endX := int(math.Floor((maxX - 0.001) / gridSize))
		endY := int(math.Floor((maxY - 0.001) / gridSize))

		if startX < 0 {
			startX = 0
		}
		if startY < 0 {
			startY = 0
		}
		if endX >= gridW {
			endX = gridW - 1
		}
		if endY >= gridH {
			endY = gridH - 1
		}

		for y := startY; y <= endY; y++ {
			for x := startX; x <= endX; x++ {
				blocked[y*gridW+x] = true
			}
		}
	})

	return blocked
}

// bodyAABB returns the box of a body centred on its transform.
func bodyAABB(transform *component.Transform, body *component.PhysicsBody) (minX, minY, maxX, maxY float64) {
	width, height := body.Width, body.Height
	if body.Radius > 0 {
		width, height = body.Radius*2, body.Radius*2
	}
	minX = transform.X - width/2
	minY = transform.Y - height/2
	return minX, minY, minX + width, minY + height
}

// FindPath returns world-space waypoints from the cell containing from to
// the cell containing to. The last waypoint is to itself rather than its
// cell centre. Diagonal steps never cut a blocked corner. A nil path means
// no route.
func FindPath(grid *component.NavGrid, from, to cp.Vector) []cp.Vector {
	if grid == nil || grid.CellSize <= 0 {
		return nil
	}
	sx, sy := grid.Cell(from)
	gx, gy := grid.Cell(to)
	path := astarPath(gridPos{sx, sy}, gridPos{gx, gy}, grid)
	if path == nil {
		return nil
	}

	out := make([]cp.Vector, 0, len(path))
	// The first cell is where the agent already stands.
	for _, p := range path[1:] {
		out = append(out, grid.CellCenter(p.x, p.y))
	}
	if len(out) == 0 {
		return []cp.Vector{to}
	}
	out[len(out)-1] = to
	return out
}

// NearestWalkable returns the centre of the unblocked cell closest to around
// within radius. A walkable around is returned unchanged.
func NearestWalkable(grid *component.NavGrid, around cp.Vector, radius float64) (cp.Vector, bool) {
	if grid == nil || grid.CellSize <= 0 || radius < 0 {
		return cp.Vector{}, false
	}
	if grid.Walkable(around) {
		return around, true
	}

	cx, cy := grid.Cell(around)
	reach := int(math.Ceil(radius/grid.CellSize)) + 1
	best := cp.Vector{}
	bestDist := math.Inf(1)
	for y := cy - reach; y <= cy+reach; y++ {
		for x := cx - reach; x <= cx+reach; x++ {
			if grid.IsBlocked(x, y) {
				continue
			}
			c := grid.CellCenter(x, y)
			d := c.Distance(around)
			if d <= radius && d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	if math.IsInf(bestDist, 1) {
		return cp.Vector{}, false
	}
	return best, true
}

func astarPath(start, goal gridPos, grid *component.NavGrid) []gridPos {
	if grid.IsBlocked(start.x, start.y) || grid.IsBlocked(goal.x, goal.y) {
		return nil
	}

	gridW := grid.Width
	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*grid.Height)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*grid.Height)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, gridW*grid.Height)
	startIdx := start.y*gridW + start.x
	goalIdx := goal.y*gridW + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal), g: 0})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.y*gridW + cur.x
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx)
		}

		for _, n := range neighbors(cur, grid) {
			idx := n.pos.y*gridW + n.pos.x
			if closed[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + n.cost
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				f := tentativeG + heuristic(n.pos, goal)
				heap.Push(open, &openItem{pos: n.pos, f: f, g: tentativeG})
			}
		}
	}

	return nil
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []gridPos {
	if startIdx == goalIdx {
		return []gridPos{{x: startIdx % gridW, y: startIdx / gridW}}
	}
	if goalIdx < 0 || goalIdx >= len(cameFrom) || cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]gridPos, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, gridPos{x: cur % gridW, y: cur / gridW})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type neighbor struct {
	pos  gridPos
	cost float64
}

var neighborOffsets = [8]gridPos{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func neighbors(p gridPos, grid *component.NavGrid) []neighbor {
	out := make([]neighbor, 0, 8)
	for _, o := range neighborOffsets {
		nx, ny := p.x+o.x, p.y+o.y
		if grid.IsBlocked(nx, ny) {
			continue
		}
		if o.x != 0 && o.y != 0 {
			// no corner cutting
			if grid.IsBlocked(p.x+o.x, p.y) || grid.IsBlocked(p.x, p.y+o.y) {
				continue
			}
			out = append(out, neighbor{pos: gridPos{nx, ny}, cost: math.Sqrt2})
			continue
		}
		out = append(out, neighbor{pos: gridPos{nx, ny}, cost: 1})
	}
	return out
}

// heuristic is the octile distance, admissible for 8-way moves.
func heuristic(a, b gridPos) float64 {
	dx := math.Abs(float64(a.x - b.x))
	dy := math.Abs(float64(a.y - b.y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

type openItem struct {
	pos   gridPos
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
