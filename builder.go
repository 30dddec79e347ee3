package automaton

import (
	"errors"
	"fmt"
)

var (
	ErrNoInitialState      = errors.New("automaton has no initial state")
	ErrUnknownInitialState = errors.New("initial state is not in the state list")
	ErrReservedSymbol      = errors.New("symbol is reserved for epsilon transitions")
)

// Builder assembles an Automaton from state labels, the form an automaton
// description is read in. Every label becomes a singleton state of the
// builder's StateTable, in the order it is first mentioned.
type Builder struct {
	table         *StateTable
	states        []*State
	alphabet      []string
	initial       *State
	accept        []*State
	transitions   []Transition
	deterministic bool
}

func NewBuilder() *Builder {
	return &Builder{table: NewStateTable()}
}

// AddState appends a state to the state list. Adding a state twice has no
// effect.
func (b *Builder) AddState(name string) error {
	s, err := b.table.Of(name)
	if err != nil {
		return fmt.Errorf("state %q: %w", name, err)
	}
	for _, existing := range b.states {
		if existing == s {
			return nil
		}
	}
	b.states = append(b.states, s)
	return nil
}

// SetAlphabet replaces the input symbols. Order is kept.
func (b *Builder) SetAlphabet(symbols ...string) error {
	for _, symbol := range symbols {
		if symbol == Epsilon {
			return fmt.Errorf("alphabet symbol %q: %w", symbol, ErrReservedSymbol)
		}
	}
	b.alphabet = append(b.alphabet[:0], symbols...)
	return nil
}

func (b *Builder) SetInitial(name string) error {
	s, err := b.table.Of(name)
	if err != nil {
		return fmt.Errorf("initial state %q: %w", name, err)
	}
	b.initial = s
	return nil
}

func (b *Builder) AddAccept(name string) error {
	s, err := b.table.Of(name)
	if err != nil {
		return fmt.Errorf("accept state %q: %w", name, err)
	}
	b.accept = append(b.accept, s)
	return nil
}

// AddTransition adds an edge from start to end on symbol, which may be
// Epsilon.
func (b *Builder) AddTransition(start, symbol, end string) error {
	from, err := b.table.Of(start)
	if err != nil {
		return fmt.Errorf("transition start %q: %w", start, err)
	}
	to, err := b.table.Of(end)
	if err != nil {
		return fmt.Errorf("transition end %q: %w", end, err)
	}
	b.transitions = append(b.transitions, NewTransition(from, symbol, to))
	return nil
}

// SetDeterministic marks the automaton being built as already deterministic,
// which makes ConvertToDFA return it unchanged.
func (b *Builder) SetDeterministic(deterministic bool) {
	b.deterministic = deterministic
}

// Finish returns the automaton. The builder must not be used afterwards.
func (b *Builder) Finish() (*Automaton, error) {
	if err := checkInitial(b.states, b.initial); err != nil {
		return nil, err
	}
	return newAutomaton(b.table, b.states, b.alphabet, b.initial, b.accept, b.transitions, b.deterministic), nil
}
