package automaton

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Automaton is a finite automaton over string symbols whose states are
// canonical States of one StateTable. An Automaton is never modified after
// construction; ConvertToDFA returns a new one. Its StateTable is not:
// conversion interns merged states there, so conversions of automata
// sharing a table must not run concurrently.
type Automaton struct {
	table      *StateTable
	generation uint64

	// Ordered state list. For a converted DFA this is the whole power set.
	states []*State

	// Input symbols in order, never containing Epsilon.
	alphabet []string

	initial *State

	// Accepting states sorted by CompareStates, and the same set keyed by
	// state id + 1 (bit 0 is Empty).
	acceptStates []*State
	isAccept     *bitset.BitSet

	transitions []Transition

	// True if for every state and symbol there is at most one transition.
	deterministic bool
}

// NewAutomaton returns a nondeterministic automaton. Every state must have
// been created by table. The slices are copied. initial must be one of
// states.
func NewAutomaton(table *StateTable, states []*State, alphabet []string, initial *State,
	accept []*State, transitions []Transition) (*Automaton, error) {
	if err := checkInitial(states, initial); err != nil {
		return nil, err
	}
	return newAutomaton(table, states, alphabet, initial, accept, transitions, false), nil
}

func checkInitial(states []*State, initial *State) error {
	if initial == nil {
		return ErrNoInitialState
	}
	if !slices.Contains(states, initial) {
		return fmt.Errorf("%w: %s", ErrUnknownInitialState, initial)
	}
	return nil
}

func newAutomaton(table *StateTable, states []*State, alphabet []string, initial *State,
	accept []*State, transitions []Transition, deterministic bool) *Automaton {
	a := &Automaton{
		table:         table,
		generation:    table.generation,
		states:        slices.Clone(states),
		alphabet:      slices.Clone(alphabet),
		initial:       initial,
		isAccept:      bitset.New(uint(table.nextID + 1)),
		transitions:   slices.Clone(transitions),
		deterministic: deterministic,
	}

	for _, s := range accept {
		if a.isAccept.Test(stateBit(s)) {
			continue
		}
		a.isAccept.Set(stateBit(s))
		a.acceptStates = append(a.acceptStates, s)
	}
	SortStates(a.acceptStates)
	return a
}

// stateBit is the position of s in bitsets keyed by state.
func stateBit(s *State) uint {
	return uint(s.id + 1)
}

// Table returns the StateTable the states of a belong to.
func (a *Automaton) Table() *StateTable {
	return a.table
}

func (a *Automaton) States() []*State {
	return slices.Clone(a.states)
}

func (a *Automaton) Alphabet() []string {
	return slices.Clone(a.alphabet)
}

func (a *Automaton) Initial() *State {
	return a.initial
}

// AcceptStates returns the accepting states sorted by CompareStates.
func (a *Automaton) AcceptStates() []*State {
	return slices.Clone(a.acceptStates)
}

// IsAccept returns true if state is an accepting state.
func (a *Automaton) IsAccept(state *State) bool {
	return a.isAccept.Test(stateBit(state))
}

func (a *Automaton) Transitions() []Transition {
	return slices.Clone(a.transitions)
}

// IsDeterministic returns true if a is marked deterministic, either because
// it was produced by ConvertToDFA or built that way.
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// Step returns the destination of the first transition leaving state on
// symbol. On a DFA that transition is unique.
func (a *Automaton) Step(state *State, symbol string) (*State, bool) {
	for _, t := range a.transitions {
		if t.Matches(state, symbol) {
			return t.end, true
		}
	}
	return nil, false
}
