package modal

import "fmt"

// State is the open/closed state of one dialog.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Event drives a state change.
type Event string

const (
	EventOpen  Event = "open"
	EventClose Event = "close"
)

// Transition is one edge of the dialog state machine.
type Transition struct {
	From  State
	Event Event
	To    State
}

// AllTransitions returns every valid transition. Re-opening an open dialog
// and closing a closed one are self-loops that change nothing.
func AllTransitions() []Transition {
	return []Transition{
		{From: StateClosed, Event: EventOpen, To: StateOpen},
		{From: StateOpen, Event: EventOpen, To: StateOpen},
		{From: StateOpen, Event: EventClose, To: StateClosed},
		{From: StateClosed, Event: EventClose, To: StateClosed},
	}
}

// TransitionError reports an event with no edge from the current state.
type TransitionError struct {
	ModalID string
	From    State
	Event   Event
}

func (e *TransitionError) Error() string {
	if e.ModalID != "" {
		return fmt.Sprintf("modal %s: no transition from %s on %s", e.ModalID, e.From, e.Event)
	}
	return fmt.Sprintf("no transition from %s on %s", e.From, e.Event)
}

// Next returns the state reached from `from` on ev.
func Next(from State, ev Event) (State, error) {
	for _, t := range AllTransitions() {
		if t.From == from && t.Event == ev {
			return t.To, nil
		}
	}
	return from, &TransitionError{From: from, Event: ev}
}
