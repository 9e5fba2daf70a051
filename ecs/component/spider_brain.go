package component

import "github.com/milk9111/ritual/brain"

// SpiderBrain attaches a behavior controller to a spider. Controller is
// built on the first AI update; Mode mirrors the controller for overlays.
type SpiderBrain struct {
	Config     brain.Config
	Controller *brain.Controller
	Mode       brain.Mode
	ModeTime   float64
	// LastSight records the most recent line-of-sight probe for the overlay.
	LastSight Sight
}

type Sight struct {
	FromX, FromY float64
	ToX, ToY     float64
	Hit          bool
	HitTarget    bool
}

var SpiderBrainComponent = NewComponent[SpiderBrain]()
