package automaton

import (
	"errors"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidState is returned when a state would be built from no labels.
var ErrInvalidState = errors.New("invalid state: label set is empty")

const emptyName = "EM"

// Empty is the sentinel state meaning "no valid destination". It has no
// labels and belongs to no StateTable.
var Empty = &State{
	id:      -1,
	labels:  bitset.New(0),
	display: emptyName,
}

// State is a canonical set of original state labels. States are created by
// a StateTable, which hands out at most one *State per distinct label set,
// so two states of the same table are equal iff they are the same pointer.
type State struct {
	id      int
	labels  *bitset.BitSet
	names   []string
	display string
}

// Names returns the labels of s in the order they were first seen by its
// table.
func (s *State) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of labels in s.
func (s *State) Len() int {
	return len(s.names)
}

// Contains reports whether name is one of the labels of s.
func (s *State) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

func (s *State) String() string {
	return s.display
}

// CompareStates orders states by label count, then by display form.
func CompareStates(a, b *State) int {
	if a.Len() != b.Len() {
		return a.Len() - b.Len()
	}
	return strings.Compare(a.display, b.display)
}

// SortStates sorts states in place by CompareStates.
func SortStates(states []*State) {
	slices.SortStableFunc(states, CompareStates)
}

// labelSet is the hash key of a state inside a StateTable.
type labelSet struct {
	bits *bitset.BitSet
	hash uint64
}

func newLabelSet(bits *bitset.BitSet) labelSet {
	hash := uint64(bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		hash += uint64(mix32(int(i)))
	}
	return labelSet{bits: bits, hash: hash}
}

func (l labelSet) Hash() uint64 {
	return l.hash
}

func (l labelSet) Equals(other Hashable) bool {
	o, ok := other.(labelSet)
	if !ok {
		return false
	}
	return sameBits(l.bits, o.bits)
}

// sameBits compares set contents; bitset.Equal also compares lengths.
func sameBits(a, b *bitset.BitSet) bool {
	n := a.Count()
	return n == b.Count() && a.IntersectionCardinality(b) == n
}

// StateTable interns states for one conversion session. It maps each label
// to a bit and each distinct label set to a single *State. A StateTable is
// not safe for concurrent use, and converting an automaton adds states to
// its table.
type StateTable struct {
	index  map[string]uint
	labels []string
	states *hashTable[*State]

	// Ids keep increasing across Reset so that no two states share an id.
	nextID int

	// Bumped by Reset; automata built before a reset are stale.
	generation uint64
}

func NewStateTable() *StateTable {
	return &StateTable{
		index:  make(map[string]uint),
		states: newHashTable[*State](withCapacity(16)),
	}
}

// Of returns the canonical state for the set of names. A single name gives
// the singleton state. Duplicate names are collapsed.
func (t *StateTable) Of(names ...string) (*State, error) {
	if len(names) == 0 {
		return nil, ErrInvalidState
	}

	bits := bitset.New(uint(len(t.labels) + len(names)))
	for _, name := range names {
		if name == "" {
			return nil, ErrInvalidState
		}
		bits.Set(t.labelIndex(name))
	}
	return t.intern(bits), nil
}

// MustOf is like Of but panics on error. It is meant for fixed label lists.
func (t *StateTable) MustOf(names ...string) *State {
	s, err := t.Of(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of canonical states created so far.
func (t *StateTable) Len() int {
	return t.states.Len()
}

// Reset forgets every label and state. States obtained before Reset must not
// be mixed with states obtained after it; converting an automaton built on
// the table before the reset fails with ErrStaleTable.
func (t *StateTable) Reset() {
	clear(t.index)
	t.labels = t.labels[:0]
	t.states.Clear()
	t.generation++
}

func (t *StateTable) labelIndex(name string) uint {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := uint(len(t.labels))
	t.index[name] = i
	t.labels = append(t.labels, name)
	return i
}

// intern returns the state for a non-empty label set, creating it on first
// use. bits must not be modified afterwards.
func (t *StateTable) intern(bits *bitset.BitSet) *State {
	key := newLabelSet(bits)
	if s, ok := t.states.Get(key); ok {
		return s
	}

	names := make([]string, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		names = append(names, t.labels[i])
	}

	s := &State{
		id:      t.nextID,
		labels:  bits,
		names:   names,
		display: "{" + strings.Join(names, ", ") + "}",
	}
	t.states.Put(key, s)
	t.nextID++
	return s
}

// merge returns the state whose labels are the union of the labels of
// states. A single state is returned as is; a union with no labels is Empty.
func (t *StateTable) merge(states []*State) (*State, error) {
	switch len(states) {
	case 0:
		return nil, ErrInvalidState
	case 1:
		return states[0], nil
	}

	bits := bitset.New(uint(len(t.labels)))
	for _, s := range states {
		bits.InPlaceUnion(s.labels)
	}
	return t.fromBits(bits), nil
}

// fromBits is intern that maps the empty label set to Empty.
func (t *StateTable) fromBits(bits *bitset.BitSet) *State {
	if bits.Count() == 0 {
		return Empty
	}
	return t.intern(bits)
}

// singleton returns the state holding only the label at index i.
func (t *StateTable) singleton(i uint) *State {
	return t.intern(bitset.New(i + 1).Set(i))
}
