package component

// PlayerController holds the player's movement tuning and sprint stamina.
// SprintTimer drains while sprinting; once it is below SprintDuration,
// CooldownTimer accumulates whenever the player is not sprinting and the
// stamina refills when it reaches SprintCooldown.
type PlayerController struct {
	WalkSpeed      float64
	SprintSpeed    float64
	SprintDuration float64
	SprintCooldown float64

	SprintTimer   float64
	CooldownTimer float64
	Sprinting     bool
	Disabled      bool
}

// Stamina returns the remaining sprint fraction in [0,1].
func (p *PlayerController) Stamina() float64 {
	if p == nil || p.SprintDuration <= 0 {
		return 0
	}
	s := p.SprintTimer / p.SprintDuration
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

var PlayerControllerComponent = NewComponent[PlayerController]()
