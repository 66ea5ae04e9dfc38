package ir

import "github.com/pintlang/pintc/internal/extern"

// Var is a decision variable (spec.md §3).
type Var struct {
	Name  string // fully-qualified
	IsPub bool
}

// State is a state variable; its expression must evaluate to a
// storage-read form (spec.md §3 invariant 3).
type State struct {
	Name string
	Expr ExprKey
}

// ConstraintDecl is one top-level `constraint` declaration.
type ConstraintDecl struct {
	Expr ExprKey
	Span extern.Span
}

// IfDecl is a conditionally-included block of further constraints.
type IfDecl struct {
	Cond        ExprKey
	Then        []ConstraintDecl
	ThenIfs     []IfDecl
	ThenMatches []MatchDecl
	Else        []ConstraintDecl
	ElseIfs     []IfDecl
	ElseMatches []MatchDecl
	Span        extern.Span
}

// MatchDecl is a pattern-dispatched block of further constraints.
type MatchDecl struct {
	Scrutinee ExprKey
	Arms      []MatchDeclArm
	Span      extern.Span
}

// MatchDeclArm is one arm of a MatchDecl.
type MatchDeclArm struct {
	Pattern    MatchPattern
	Constraints []ConstraintDecl
	Ifs        []IfDecl
	Matches    []MatchDecl
}

// InterfaceInstance binds a local name to an external contract address,
// under the shape declared by a contract-level Interface.
type InterfaceInstance struct {
	Name          string // local instance name, e.g. "Foo" in `Foo::storage::addr`
	InterfaceName string // the Interface declaration this instantiates
	Address       ExprKey
}

// PredicateInstance names another predicate — possibly through a
// named InterfaceInstance — by address, for pathway addressing
// (spec.md §4.4.5).
type PredicateInstance struct {
	Name              string
	InterfaceInstance *string // nil => same contract
	PredicateIdent    string
	Address           *ExprKey
}

// DirectiveKind distinguishes a predicate's solve directive.
type DirectiveKind int

const (
	DirSatisfy DirectiveKind = iota
	DirMinimize
	DirMaximize
)

func (k DirectiveKind) String() string {
	switch k {
	case DirSatisfy:
		return "satisfy"
	case DirMinimize:
		return "minimize"
	case DirMaximize:
		return "maximize"
	default:
		return "?directive"
	}
}

// SolveDirective is a predicate's `satisfy` / `minimize E` / `maximize
// E` directive. Before canonicalization (spec.md §4.3 step 2), Expr
// holds the objective expression for minimize/maximize and is nil for
// satisfy. After canonicalization every minimize/maximize directive's
// Objective names the fresh `__objective` variable the pass introduced;
// Expr is left populated for diagnostics but is no longer load-bearing.
type SolveDirective struct {
	Kind      DirectiveKind
	Expr      *ExprKey
	Objective *VarKey
}

// Predicate is one named boolean program (spec.md §3).
type Predicate struct {
	Name string

	Directive *SolveDirective

	vars     *SlotMap[*Var]
	varTypes *SecondaryMap[Type]

	states     *SlotMap[*State]
	stateTypes *SecondaryMap[Type]

	Constraints []ConstraintDecl
	Ifs         []IfDecl
	Matches     []MatchDecl

	VarInit map[VarKey]ExprKey

	InterfaceInstances []InterfaceInstance
	PredicateInstances []PredicateInstance

	Ephemerals []string
	Symbols    *SymbolTable
}

// NewPredicate returns an empty predicate named name.
func NewPredicate(name string) *Predicate {
	return &Predicate{
		Name:       name,
		vars:       NewSlotMap[*Var](),
		varTypes:   NewSecondaryMap[Type](),
		states:     NewSlotMap[*State](),
		stateTypes: NewSecondaryMap[Type](),
		VarInit:    make(map[VarKey]ExprKey),
		Symbols:    NewSymbolTable(),
	}
}

// --- Var table -------------------------------------------------------

func (p *Predicate) AddVar(v *Var, t Type) VarKey {
	k := VarKey(p.vars.Insert(v))
	p.varTypes.Set(Key(k), t)
	return k
}

func (p *Predicate) Var(k VarKey) (*Var, bool) { return p.vars.Get(Key(k)) }

func (p *Predicate) VarType(k VarKey) (Type, bool) { return p.varTypes.Get(Key(k)) }

func (p *Predicate) SetVarType(k VarKey, t Type) { p.varTypes.Set(Key(k), t) }

// RemoveVar removes a var (e.g. an array/tuple var during
// scalarization). Callers must have already replaced every reference.
func (p *Predicate) RemoveVar(k VarKey) {
	p.vars.Remove(Key(k))
	p.varTypes.Delete(Key(k))
	delete(p.VarInit, k)
}

// VarKeys returns every live var key in declaration order (spec.md §3
// invariant 7: "dense starting at 0 in the order vars are declared").
func (p *Predicate) VarKeys() []VarKey {
	keys := p.vars.Keys()
	out := make([]VarKey, len(keys))
	for i, k := range keys {
		out[i] = VarKey(k)
	}
	return out
}

func (p *Predicate) EachVar(f func(VarKey, *Var) bool) {
	p.vars.Each(func(k Key, v *Var) bool { return f(VarKey(k), v) })
}

// --- State table -----------------------------------------------------

func (p *Predicate) AddState(s *State, t Type) StateKey {
	k := StateKey(p.states.Insert(s))
	p.stateTypes.Set(Key(k), t)
	return k
}

func (p *Predicate) State(k StateKey) (*State, bool) { return p.states.Get(Key(k)) }

func (p *Predicate) StateType(k StateKey) (Type, bool) { return p.stateTypes.Get(Key(k)) }

func (p *Predicate) SetStateType(k StateKey, t Type) { p.stateTypes.Set(Key(k), t) }

// StateKeys returns every live state key in declaration order (spec.md
// §3 invariant 8).
func (p *Predicate) StateKeys() []StateKey {
	keys := p.states.Keys()
	out := make([]StateKey, len(keys))
	for i, k := range keys {
		out[i] = StateKey(k)
	}
	return out
}

func (p *Predicate) EachState(f func(StateKey, *State) bool) {
	p.states.Each(func(k Key, s *State) bool { return f(StateKey(k), s) })
}

// PredicateInstanceByName looks up a predicate instance by its local name.
func (p *Predicate) PredicateInstanceByName(name string) (*PredicateInstance, bool) {
	for i := range p.PredicateInstances {
		if p.PredicateInstances[i].Name == name {
			return &p.PredicateInstances[i], true
		}
	}
	return nil, false
}

// InterfaceInstanceByName looks up an interface instance by its local name.
func (p *Predicate) InterfaceInstanceByName(name string) (*InterfaceInstance, bool) {
	for i := range p.InterfaceInstances {
		if p.InterfaceInstances[i].Name == name {
			return &p.InterfaceInstances[i], true
		}
	}
	return nil, false
}
