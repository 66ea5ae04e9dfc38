package ir

import "github.com/pintlang/pintc/internal/extern"

// UnionVariant is one case of a union/enum declaration.
type UnionVariant struct {
	Name    string
	Payload *Type // nil for a nullary variant
}

// UnionDecl is a union/enum declaration; its variant count is what
// fix-array-sizes uses when an array size names a union (spec.md §4.3
// step 1: "a reference to a union/enum declaration yields the number
// of variants").
type UnionDecl struct {
	Name     string
	Variants []UnionVariant
	Span     extern.Span
}

// StorageVar is one declared storage slot.
type StorageVar struct {
	Name string
	Type Type
}

// StorageBlock is an ordered storage declaration, owned either by the
// contract (the predicate's own storage) or by an Interface (an
// external contract's storage shape).
type StorageBlock struct {
	Vars []StorageVar
	Span extern.Span
}

// IndexOf returns the declaration-order index of a named storage var.
func (b *StorageBlock) IndexOf(name string) (int, bool) {
	if b == nil {
		return 0, false
	}
	for i, v := range b.Vars {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}

// InterfaceVar is one var in a PredicateInterface.
type InterfaceVar struct {
	Name string
	Type Type
}

// PredicateInterface is one predicate's externally-visible shape
// under an Interface.
type PredicateInterface struct {
	Name string
	Vars []InterfaceVar
}

// VarIndex looks up a var by name within this predicate interface.
func (p *PredicateInterface) VarIndex(name string) (int, bool) {
	for i, v := range p.Vars {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Interface is an external-contract shape: an optional storage block
// plus the predicates it exposes.
type Interface struct {
	Name       string
	Storage    *StorageBlock
	Predicates []PredicateInterface
}

// PredicateByName looks up a PredicateInterface declared under this interface.
func (i *Interface) PredicateByName(name string) (*PredicateInterface, bool) {
	for idx := range i.Predicates {
		if i.Predicates[idx].Name == name {
			return &i.Predicates[idx], true
		}
	}
	return nil, false
}

// NewType is a type alias declared at contract scope.
type NewType struct {
	Name   string
	Target Type
}

// Const is a contract-level named constant.
type Const struct {
	Expr         ExprKey
	DeclaredType Type
}

// Contract is the root IR entity (spec.md §3). It owns every table;
// every other entity is reached by key (spec.md "Ownership").
type Contract struct {
	preds     *SlotMap[*Predicate]
	exprs     *SlotMap[Expr]
	exprTypes *SecondaryMap[Type]
	unions    *SlotMap[*UnionDecl]

	Consts     map[string]*Const
	Storage    *StorageBlock
	Interfaces []Interface
	NewTypes   []NewType

	// RemovedMacroCalls marks expression keys that replaced a macro
	// call the surface compiler could not expand, so later passes can
	// skip a predicate that produced only cascading errors (spec.md §9
	// "Open questions").
	RemovedMacroCalls map[ExprKey]bool

	Symbols *SymbolTable
}

// NewContract returns an empty contract with initialized tables.
func NewContract() *Contract {
	return &Contract{
		preds:             NewSlotMap[*Predicate](),
		exprs:             NewSlotMap[Expr](),
		exprTypes:         NewSecondaryMap[Type](),
		unions:            NewSlotMap[*UnionDecl](),
		Consts:            make(map[string]*Const),
		NewTypes:          nil,
		RemovedMacroCalls: make(map[ExprKey]bool),
		Symbols:           NewSymbolTable(),
	}
}

// --- Expression table --------------------------------------------------

// AddExpr inserts an expression with its type and returns its key
// (invariant 1/2 of spec.md §3: every key resolves, and has exactly
// one type-table entry).
func (c *Contract) AddExpr(e Expr, t Type) ExprKey {
	k := ExprKey(c.exprs.Insert(e))
	c.exprTypes.Set(Key(k), t)
	return k
}

// Expr looks up an expression by key.
func (c *Contract) Expr(k ExprKey) (Expr, bool) { return c.exprs.Get(Key(k)) }

// SetExpr overwrites the expression at k in place (used by
// replace_exprs and lowering passes that rewrite nodes without
// changing their key).
func (c *Contract) SetExpr(k ExprKey, e Expr) bool { return c.exprs.Set(Key(k), e) }

// ExprType looks up the type of an expression.
func (c *Contract) ExprType(k ExprKey) (Type, bool) { return c.exprTypes.Get(Key(k)) }

// SetExprType overwrites the type of an expression.
func (c *Contract) SetExprType(k ExprKey, t Type) { c.exprTypes.Set(Key(k), t) }

// RemoveExpr deletes an expression and its type entry. Callers must
// have already replaced every reference to k (spec.md "Lifecycle").
func (c *Contract) RemoveExpr(k ExprKey) {
	c.exprs.Remove(Key(k))
	c.exprTypes.Delete(Key(k))
}

// ExprKeys returns every live expression key in insertion order.
func (c *Contract) ExprKeys() []ExprKey {
	keys := c.exprs.Keys()
	out := make([]ExprKey, len(keys))
	for i, k := range keys {
		out[i] = ExprKey(k)
	}
	return out
}

// EachExpr iterates every live (key, expr) pair in insertion order.
func (c *Contract) EachExpr(f func(ExprKey, Expr) bool) {
	c.exprs.Each(func(k Key, e Expr) bool { return f(ExprKey(k), e) })
}

// --- Predicate table -----------------------------------------------------

// AddPredicate inserts a predicate and returns its key.
func (c *Contract) AddPredicate(p *Predicate) PredKey { return PredKey(c.preds.Insert(p)) }

// Predicate looks up a predicate by key.
func (c *Contract) Predicate(k PredKey) (*Predicate, bool) { return c.preds.Get(Key(k)) }

// RemovePredicate deletes a predicate.
func (c *Contract) RemovePredicate(k PredKey) { c.preds.Remove(Key(k)) }

// PredicateKeys returns every live predicate key in declaration order.
func (c *Contract) PredicateKeys() []PredKey {
	keys := c.preds.Keys()
	out := make([]PredKey, len(keys))
	for i, k := range keys {
		out[i] = PredKey(k)
	}
	return out
}

// EachPredicate iterates every live (key, predicate) pair in declaration order.
func (c *Contract) EachPredicate(f func(PredKey, *Predicate) bool) {
	c.preds.Each(func(k Key, p *Predicate) bool { return f(PredKey(k), p) })
}

// --- Union table ---------------------------------------------------------

// AddUnion inserts a union declaration and returns its key.
func (c *Contract) AddUnion(u *UnionDecl) UnionKey { return UnionKey(c.unions.Insert(u)) }

// Union looks up a union declaration by key.
func (c *Contract) Union(k UnionKey) (*UnionDecl, bool) { return c.unions.Get(Key(k)) }

// UnionKeys returns every live union key in declaration order.
func (c *Contract) UnionKeys() []UnionKey {
	keys := c.unions.Keys()
	out := make([]UnionKey, len(keys))
	for i, k := range keys {
		out[i] = UnionKey(k)
	}
	return out
}
