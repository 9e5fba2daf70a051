package component

// Transform is an entity's planar position. Rotation is the facing angle in
// radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
