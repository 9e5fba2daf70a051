// Package brain implements the spider's behavior state machine.
//
// The controller is engine-agnostic: it perceives the world through a
// Perception oracle, moves through a Navigator and reports animation state
// to an Animator. The host calls Tick once per frame with the elapsed time
// and the target position, then feeds the returned Directive to its
// collaborators with Apply. All randomness comes from an injected Rand so a
// seeded controller replays the same decisions.
package brain
