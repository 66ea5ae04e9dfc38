package asm

import "github.com/pintlang/pintc/internal/ir"

// Layout is the per-predicate addressing table C4 needs: a dense slot
// index for every private and every public var (spec.md §4.4.4), plus
// the running state-read slot base for every state var (§4.4.3).
type Layout struct {
	privateSlot map[ir.VarKey]int
	publicSlot  map[ir.VarKey]int
	stateSlot   map[ir.StateKey]int
}

// BuildLayout assigns slots in declaration order: private vars get a
// position among private vars, public vars a position among public
// vars (spec.md §4.4.4: "the slot index equals its position among
// non-public vars ... or among public vars").
func BuildLayout(c *ir.Contract, p *ir.Predicate) *Layout {
	l := &Layout{
		privateSlot: make(map[ir.VarKey]int),
		publicSlot:  make(map[ir.VarKey]int),
		stateSlot:   make(map[ir.StateKey]int),
	}
	priv, pub := 0, 0
	p.EachVar(func(k ir.VarKey, v *ir.Var) bool {
		if v.IsPub {
			l.publicSlot[k] = pub
			pub++
		} else {
			l.privateSlot[k] = priv
			priv++
		}
		return true
	})

	base := 0
	p.EachState(func(k ir.StateKey, _ *ir.State) bool {
		l.stateSlot[k] = base
		if t, ok := p.StateType(k); ok {
			base += ir.StorageSlots(t)
		}
		return true
	})
	return l
}

// PrivateSlot returns a private var's decision-var slot index.
func (l *Layout) PrivateSlot(k ir.VarKey) (int, bool) { v, ok := l.privateSlot[k]; return v, ok }

// PublicSlot returns a public var's transient slot index.
func (l *Layout) PublicSlot(k ir.VarKey) (int, bool) { v, ok := l.publicSlot[k]; return v, ok }

// StateBase returns a state var's base slot in the state-read scratch area.
func (l *Layout) StateBase(k ir.StateKey) (int, bool) { v, ok := l.stateSlot[k]; return v, ok }
