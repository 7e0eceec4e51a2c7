package process

// State represents the scheduling state of a process
type State string

const (
	StateNotAssigned State = "NOT_ASSIGNED"
	StateNew         State = "NEW"
	StateReady       State = "READY"
	StateRunning     State = "RUNNING"
	StateWaiting     State = "WAITING"
	StateTerminated  State = "TERMINATED"
)

// transitions lists every legal target state per source state.
var transitions = map[State][]State{
	StateNotAssigned: {StateNew},
	StateNew:         {StateReady},
	StateReady:       {StateRunning},
	StateRunning:     {StateTerminated, StateWaiting, StateReady},
	StateWaiting:     {StateReady},
}

// CanTransition reports whether from -> to is a legal state change
func CanTransition(from, to State) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
