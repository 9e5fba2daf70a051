package component

import "github.com/jakecoffman/cp"

// CameraShakeRequest asks the camera to jitter for Remaining seconds.
// Magnitude is measured in world units. Offset is the displacement for the
// current frame.
type CameraShakeRequest struct {
	Remaining float64
	Magnitude float64
	Offset    cp.Vector
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
