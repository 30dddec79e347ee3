package automaton

import (
	"errors"
	"fmt"

	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

// DefaultMaxStates is the default limit on the number of original states
// ConvertToDFA accepts. The converted state list has 2^N entries.
const DefaultMaxStates = 20

// maxPowerSetStates keeps 1<<N inside a uint64 counter.
const maxPowerSetStates = 62

var (
	// ErrTooComplex is returned when the power set of the states is too
	// large to enumerate.
	ErrTooComplex = errors.New("automaton is too complex to determinize")

	// ErrStaleTable is returned when the StateTable of an automaton was
	// reset after the automaton was built.
	ErrStaleTable = errors.New("state table was reset after the automaton was built")
)

type convertOptions struct {
	maxStates int
}

type ConvertOption func(*convertOptions)

// WithMaxStates sets the largest number of original states ConvertToDFA
// will enumerate the power set of.
func WithMaxStates(n int) ConvertOption {
	return func(o *convertOptions) {
		o.maxStates = n
	}
}

// ConvertToDFA returns a deterministic automaton equivalent to a using the
// subset construction. If a is already deterministic it is returned as is.
//
// The state list of the result is the whole power set of the states of a:
// Empty followed by every non-empty subset sorted by CompareStates. The
// transitions only cover subsets reachable from the initial state, one per
// reachable subset and alphabet symbol, with Empty as the sink.
// Worst case complexity: exponential in the number of states.
//
// The merged states are interned in the StateTable of a, so a does not
// change but its table does: conversions of automata sharing a table must
// not run concurrently.
func (a *Automaton) ConvertToDFA(opts ...ConvertOption) (*Automaton, error) {
	if a.deterministic {
		return a, nil
	}
	if a.generation != a.table.generation {
		return nil, ErrStaleTable
	}

	o := &convertOptions{maxStates: DefaultMaxStates}
	for _, opt := range opts {
		opt(o)
	}
	limit := min(o.maxStates, maxPowerSetStates)
	if len(a.states) > limit {
		return nil, fmt.Errorf("%w: %d states, limit is %d", ErrTooComplex, len(a.states), limit)
	}

	c := newConverter(a)

	states := c.powerSet()
	initial, err := a.table.merge(c.closure(a.initial))
	if err != nil {
		return nil, err
	}
	transitions, err := c.computeTransitions()
	if err != nil {
		return nil, err
	}
	accept := c.acceptStates(transitions)

	u.Debugf("converted automaton with %d states: %d power set states, %d transitions, %d accept states",
		len(a.states), len(states), len(transitions), len(accept))

	return newAutomaton(a.table, states, a.alphabet, initial, accept, transitions, true), nil
}

// EpsilonClosure returns the states reachable from s through zero or more
// epsilon transitions of a, starting with s itself.
func (a *Automaton) EpsilonClosure(s *State) []*State {
	return newConverter(a).closure(s)
}

type move struct {
	from   *State
	symbol string
}

// converter holds the transitions of an automaton indexed by source state
// for one ConvertToDFA call.
type converter struct {
	nfa      *Automaton
	table    *StateTable
	epsilons map[*State][]*State
	moves    map[move][]*State
	closures map[*State][]*State
}

func newConverter(a *Automaton) *converter {
	c := &converter{
		nfa:      a,
		table:    a.table,
		epsilons: make(map[*State][]*State),
		moves:    make(map[move][]*State),
		closures: make(map[*State][]*State),
	}
	for _, t := range a.transitions {
		if t.IsEpsilon() {
			c.epsilons[t.start] = append(c.epsilons[t.start], t.end)
			continue
		}
		key := move{from: t.start, symbol: t.symbol}
		c.moves[key] = append(c.moves[key], t.end)
	}
	return c
}

// closure computes the epsilon closure of start with an explicit stack.
// The returned slice is shared and must not be modified.
func (c *converter) closure(start *State) []*State {
	if result, ok := c.closures[start]; ok {
		return result
	}

	visited := bitset.New(uint(c.table.nextID + 1))
	result := make([]*State, 0, 1)
	stack := []*State{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Test(stateBit(s)) {
			continue
		}
		visited.Set(stateBit(s))
		result = append(result, s)

		for _, next := range c.epsilons[s] {
			if !visited.Test(stateBit(next)) {
				stack = append(stack, next)
			}
		}
	}

	c.closures[start] = result
	return result
}

// powerSet lists Empty followed by every non-empty combination of the
// original states, merged and sorted. Combinations are the bit patterns of
// a counter running from 1 to 2^N-1.
func (c *converter) powerSet() []*State {
	states := c.nfa.states
	n := len(states)
	total := uint64(1) << n

	subsets := make([]*State, 0, total-1)
	for counter := uint64(1); counter < total; counter++ {
		members := bitset.From([]uint64{counter})
		labels := bitset.New(0)
		for j, ok := members.NextSet(0); ok; j, ok = members.NextSet(j + 1) {
			labels.InPlaceUnion(states[j].labels)
		}
		subsets = append(subsets, c.table.fromBits(labels))
	}
	SortStates(subsets)

	return append([]*State{Empty}, subsets...)
}

// computeTransitions explores the subsets reachable from the initial state
// breadth first and emits exactly one transition per explored subset and
// alphabet symbol.
func (c *converter) computeTransitions() ([]Transition, error) {
	alphabet := c.nfa.alphabet
	transitions := make([]Transition, 0)
	found := bitset.New(uint(c.table.nextID + 1))
	queue := []*State{c.nfa.initial}

	for len(queue) > 0 {
		start, err := c.table.merge(c.closure(queue[0]))
		if err != nil {
			return nil, err
		}
		queue = queue[1:]
		found.Set(stateBit(start))

		for _, symbol := range alphabet {
			ends := make([]*State, 0)
			for i, ok := start.labels.NextSet(0); ok; i, ok = start.labels.NextSet(i + 1) {
				from := c.table.singleton(i)
				for _, end := range c.moves[move{from: from, symbol: symbol}] {
					ends = append(ends, c.closure(end)...)
				}
			}

			end := Empty
			if len(ends) > 0 {
				if end, err = c.table.merge(ends); err != nil {
					return nil, err
				}
			}

			if !found.Test(stateBit(end)) {
				found.Set(stateBit(end))
				queue = append(queue, end)
			}
			transitions = append(transitions, NewTransition(start, symbol, end))
		}
	}

	return transitions, nil
}

// acceptStates returns every state appearing in transitions that shares a
// label with an accepting state of the original automaton.
func (c *converter) acceptStates(transitions []Transition) []*State {
	acceptLabels := bitset.New(0)
	for _, s := range c.nfa.acceptStates {
		acceptLabels.InPlaceUnion(s.labels)
	}

	accept := make([]*State, 0)
	classified := bitset.New(uint(c.table.nextID + 1))
	classify := func(s *State) {
		if classified.Test(stateBit(s)) {
			return
		}
		classified.Set(stateBit(s))
		if s.labels.IntersectionCardinality(acceptLabels) > 0 {
			accept = append(accept, s)
		}
	}

	for _, t := range transitions {
		classify(t.start)
		classify(t.end)
	}
	return accept
}
