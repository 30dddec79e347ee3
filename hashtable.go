package automaton

// Hashable is a key of a hashTable.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// hashTable is a chained hash table keyed by Hashable values. It is not
// safe for concurrent use; each StateTable owns its own.
type hashTable[T any] struct {
	buckets    []*entry[T]
	size       int
	mask       uint64
	loadFactor float64
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

type hashTableOptions struct {
	capacity   int
	loadFactor float64
}

type hashTableOption func(*hashTableOptions)

// withCapacity sets the initial bucket count, rounded up to a power of two.
func withCapacity(capacity int) hashTableOption {
	return func(o *hashTableOptions) {
		o.capacity = capacity
	}
}

// withLoadFactor sets the size/buckets ratio above which the table grows.
func withLoadFactor(loadFactor float64) hashTableOption {
	return func(o *hashTableOptions) {
		o.loadFactor = loadFactor
	}
}

func newHashTable[T any](opts ...hashTableOption) *hashTable[T] {
	o := &hashTableOptions{
		capacity:   16,
		loadFactor: 0.75,
	}
	for _, opt := range opts {
		opt(o)
	}

	capacity := 1
	for capacity < o.capacity {
		capacity <<= 1
	}

	return &hashTable[T]{
		buckets:    make([]*entry[T], capacity),
		mask:       uint64(capacity - 1),
		loadFactor: o.loadFactor,
	}
}

// Put stores value under key, replacing any value stored under an equal key.
func (h *hashTable[T]) Put(key Hashable, value T) {
	index := key.Hash() & h.mask
	for e := h.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	h.buckets[index] = &entry[T]{
		key:   key,
		value: value,
		next:  h.buckets[index],
	}
	h.size++

	if float64(h.size)/float64(len(h.buckets)) > h.loadFactor {
		h.resize()
	}
}

func (h *hashTable[T]) Get(key Hashable) (T, bool) {
	index := key.Hash() & h.mask
	for e := h.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var zero T
	return zero, false
}

func (h *hashTable[T]) Len() int {
	return h.size
}

// Clear drops every entry but keeps the current bucket array.
func (h *hashTable[T]) Clear() {
	clear(h.buckets)
	h.size = 0
}

func (h *hashTable[T]) resize() {
	newCap := len(h.buckets) << 1
	buckets := make([]*entry[T], newCap)
	mask := uint64(newCap - 1)

	for _, head := range h.buckets {
		for e := head; e != nil; {
			next := e.next
			index := e.key.Hash() & mask
			e.next = buckets[index]
			buckets[index] = e
			e = next
		}
	}

	h.buckets = buckets
	h.mask = mask
}
