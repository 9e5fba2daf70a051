package component

// RestartRequest is a marker component used to signal the game loop to
// rebuild the world. Systems create a short-lived entity carrying it.
type RestartRequest struct {
	Reason string
}

var RestartRequestComponent = NewComponent[RestartRequest]()
