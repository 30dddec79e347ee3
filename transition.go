package automaton

// Epsilon is the reserved symbol of a transition taken without input.
const Epsilon = "EPS"

// Transition is an immutable labeled edge between two states.
type Transition struct {
	start  *State
	symbol string
	end    *State
}

func NewTransition(start *State, symbol string, end *State) Transition {
	return Transition{start: start, symbol: symbol, end: end}
}

// Matches reports whether t leaves from state on symbol.
func (t Transition) Matches(from *State, symbol string) bool {
	return t.start == from && t.symbol == symbol
}

func (t Transition) Start() *State {
	return t.start
}

func (t Transition) Symbol() string {
	return t.symbol
}

func (t Transition) End() *State {
	return t.end
}

// IsEpsilon reports whether t can be taken without reading input.
func (t Transition) IsEpsilon() bool {
	return t.symbol == Epsilon
}

func (t Transition) String() string {
	return t.start.String() + ", " + t.symbol + " = " + t.end.String()
}
