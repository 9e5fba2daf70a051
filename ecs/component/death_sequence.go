package component

type DeathPhase int

const (
	DeathDelay DeathPhase = iota
	DeathScreamer
	DeathDone
)

func (p DeathPhase) String() string {
	switch p {
	case DeathDelay:
		return "delay"
	case DeathScreamer:
		return "screamer"
	case DeathDone:
		return "done"
	default:
		return "unknown"
	}
}

// DeathSequence runs on a killed player. Elapsed counts from the moment of
// death; the screamer starts after VideoDelay and a restart is requested
// once Elapsed reaches Duration.
type DeathSequence struct {
	Phase          DeathPhase
	Elapsed        float64
	VideoDelay     float64
	Duration       float64
	FadeSpeed      float64
	ShakeDuration  float64
	ShakeMagnitude float64
	Fade           float64
}

var DeathSequenceComponent = NewComponent[DeathSequence]()
