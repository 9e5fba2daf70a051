package component

// AttackTrigger is the reach of a spider's bite around its body centre.
type AttackTrigger struct {
	Radius float64
}

var AttackTriggerComponent = NewComponent[AttackTrigger]()
