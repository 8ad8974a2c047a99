package app

// LoopState is the state of the watch loop inside a running instance.
type LoopState int

const (
	LoopIdle LoopState = iota
	LoopProcessing
	LoopSleeping
	LoopStopped
)

// String returns a human-readable representation of the loop state.
func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "Idle"
	case LoopProcessing:
		return "Processing"
	case LoopSleeping:
		return "Sleeping"
	case LoopStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// canMove reports whether the loop may move from s to next.
// Any live state may stop; Stopped is terminal.
func (s LoopState) canMove(next LoopState) bool {
	if s == LoopStopped {
		return false
	}
	if next == LoopStopped {
		return true
	}
	switch s {
	case LoopIdle:
		return next == LoopProcessing || next == LoopSleeping
	case LoopProcessing:
		return next == LoopSleeping
	case LoopSleeping:
		return next == LoopIdle
	}
	return false
}
