// Package ir implements the typed intermediate representation: the
// slot-mapped contract/predicate/expression tables described in
// SPEC_FULL.md §4.1 (C1 — IR store).
package ir

// Key is the generic stable-key shape: an index into a SlotMap's
// backing slice paired with a generation counter. Removing a slot
// bumps its generation so any key captured before the removal is
// known stale without a dangling-pointer dereference — the
// generalization of the teacher's stable NodeID keying
// (internal/core.CoreNode, internal/sid) called for by SPEC_FULL.md §3.
type Key struct {
	idx uint32
	gen uint32
}

// Valid reports whether a key was ever assigned (the zero Key is never valid).
func (k Key) Valid() bool { return k.gen != 0 }

// ExprKey, PredKey, VarKey, StateKey and UnionKey are distinct named
// types over Key so the Go compiler catches a caller mixing up which
// table a key belongs to — they share Key's representation but are
// never assignable to one another without an explicit conversion.
type (
	ExprKey  Key
	PredKey  Key
	VarKey   Key
	StateKey Key
	UnionKey Key
)

func (k ExprKey) Valid() bool  { return Key(k).Valid() }
func (k PredKey) Valid() bool  { return Key(k).Valid() }
func (k VarKey) Valid() bool   { return Key(k).Valid() }
func (k StateKey) Valid() bool { return Key(k).Valid() }
func (k UnionKey) Valid() bool { return Key(k).Valid() }

type slotEntry[V any] struct {
	gen   uint32
	value V
	live  bool
}

// SlotMap is a stable-key table with O(1) insert and lookup, removal
// linear in the number of live entries (the insertion-order list is
// compacted), and insertion-order iteration (spec.md §4.1). Removal invalidates only
// the removed key: later inserts reuse the slot with a bumped
// generation, so a stale key captured before removal never aliases
// the new occupant.
type SlotMap[V any] struct {
	slots    []slotEntry[V]
	free     []uint32
	order    []uint32 // live slot indices, insertion order
	orderPos []int    // index into order, per slot (-1 if not present)
}

// NewSlotMap returns an empty slot map.
func NewSlotMap[V any]() *SlotMap[V] {
	return &SlotMap[V]{}
}

// Insert adds v and returns its stable key.
func (m *SlotMap[V]) Insert(v V) Key {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
		m.slots[idx].value = v
		m.slots[idx].live = true
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slotEntry[V]{gen: 1, value: v, live: true})
		m.orderPos = append(m.orderPos, -1)
	}
	m.orderPos[idx] = len(m.order)
	m.order = append(m.order, idx)
	return Key{idx: idx, gen: m.slots[idx].gen}
}

// Get looks up the value at k. ok is false if k was never assigned,
// has been removed, or belongs to a different generation of the slot.
func (m *SlotMap[V]) Get(k Key) (V, bool) {
	var zero V
	if int(k.idx) >= len(m.slots) {
		return zero, false
	}
	e := m.slots[k.idx]
	if !e.live || e.gen != k.gen {
		return zero, false
	}
	return e.value, true
}

// Set overwrites the value at k in place; ok is false if k is stale.
func (m *SlotMap[V]) Set(k Key, v V) bool {
	if int(k.idx) >= len(m.slots) {
		return false
	}
	e := &m.slots[k.idx]
	if !e.live || e.gen != k.gen {
		return false
	}
	e.value = v
	return true
}

// Remove deletes the slot at k, bumping its generation. Callers must
// replace any dangling reference to k before calling Remove — the IR
// store does not scan for references (spec.md "Lifecycle").
func (m *SlotMap[V]) Remove(k Key) bool {
	if int(k.idx) >= len(m.slots) {
		return false
	}
	e := &m.slots[k.idx]
	if !e.live || e.gen != k.gen {
		return false
	}
	e.live = false
	var zero V
	e.value = zero
	e.gen++
	m.free = append(m.free, k.idx)

	pos := m.orderPos[k.idx]
	m.order = append(m.order[:pos], m.order[pos+1:]...)
	for i := pos; i < len(m.order); i++ {
		m.orderPos[m.order[i]] = i
	}
	m.orderPos[k.idx] = -1
	return true
}

// Len returns the number of live entries.
func (m *SlotMap[V]) Len() int { return len(m.order) }

// Keys returns every live key in insertion order.
func (m *SlotMap[V]) Keys() []Key {
	out := make([]Key, 0, len(m.order))
	for _, idx := range m.order {
		out = append(out, Key{idx: idx, gen: m.slots[idx].gen})
	}
	return out
}

// Each calls f for every live (key, value) pair in insertion order.
// Iteration stops early if f returns false.
func (m *SlotMap[V]) Each(f func(Key, V) bool) {
	for _, idx := range m.order {
		k := Key{idx: idx, gen: m.slots[idx].gen}
		if !f(k, m.slots[idx].value) {
			return
		}
	}
}

// SecondaryMap is a companion table keyed by the same key type as a
// SlotMap, used for the parallel type table and var/state initializer
// maps (spec.md §4.1). Unlike SlotMap it does not own key lifetime:
// entries become unreachable (but are not proactively cleaned up)
// when the primary table removes the key.
type SecondaryMap[V any] struct {
	m map[Key]V
}

// NewSecondaryMap returns an empty secondary map.
func NewSecondaryMap[V any]() *SecondaryMap[V] {
	return &SecondaryMap[V]{m: make(map[Key]V)}
}

func (s *SecondaryMap[V]) Get(k Key) (V, bool) {
	v, ok := s.m[k]
	return v, ok
}

func (s *SecondaryMap[V]) Set(k Key, v V) { s.m[k] = v }

func (s *SecondaryMap[V]) Delete(k Key) { delete(s.m, k) }

func (s *SecondaryMap[V]) Len() int { return len(s.m) }
