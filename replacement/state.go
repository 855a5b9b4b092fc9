package replacement

// State is the phase of an engine's calculation.
type State int

// The states that an engine goes through during a calculation.
const (
	StateAwaitingFill State = iota
	StateFilling
	StateReplacing
)

func (s State) String() string {
	switch s {
	case StateAwaitingFill:
		return "AwaitingFill"
	case StateFilling:
		return "Filling"
	case StateReplacing:
		return "Replacing"
	default:
		return "Unknown"
	}
}
