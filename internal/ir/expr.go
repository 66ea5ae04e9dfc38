package ir

import (
	"fmt"
	"strings"

	"github.com/pintlang/pintc/internal/extern"
)

// Node carries the span every expression variant embeds; the span
// survives lowering unchanged and anchors diagnostics (spec.md §9).
type Node struct {
	Span extern.Span
}

// Expr is the closed tagged union of expression forms (spec.md §3).
// Every sub-expression is referenced by ExprKey, never by direct
// pointer, so lowering passes can rewrite in place (spec.md §9
// "Cross-table references").
type Expr interface {
	exprNode()
	SpanOf() extern.Span
	String() string
}

func (n Node) SpanOf() extern.Span { return n.Span }

// --- Literal immediates ---------------------------------------------------

type LitInt struct {
	Node
	Value int64
}

func (*LitInt) exprNode()        {}
func (l *LitInt) String() string { return fmt.Sprintf("%d", l.Value) }

// LitB256 carries a 256-bit immediate as four big-endian 64-bit words,
// matching the VM's four-word b256 encoding (spec.md §3, §4.4.1).
type LitB256 struct {
	Node
	Words [4]uint64
}

func (*LitB256) exprNode() {}
func (l *LitB256) String() string {
	return fmt.Sprintf("0x%016x%016x%016x%016x", l.Words[0], l.Words[1], l.Words[2], l.Words[3])
}

type LitBool struct {
	Node
	Value bool
}

func (*LitBool) exprNode()        {}
func (l *LitBool) String() string { return fmt.Sprintf("%t", l.Value) }

// LitString is a literal string. It is rejected at codegen time
// (spec.md §4.4.1 "Other literal forms ... are rejected") — it exists
// so earlier passes and diagnostics can still represent it.
type LitString struct {
	Node
	Value string
}

func (*LitString) exprNode()        {}
func (l *LitString) String() string { return fmt.Sprintf("%q", l.Value) }

type LitArray struct {
	Node
	Elements []ExprKey
}

func (*LitArray) exprNode()        {}
func (l *LitArray) String() string { return fmt.Sprintf("%v", l.Elements) }

type LitTuple struct {
	Node
	Elements []ExprKey
}

func (*LitTuple) exprNode()        {}
func (l *LitTuple) String() string { return fmt.Sprintf("(%v)", l.Elements) }

type LitUnion struct {
	Node
	Union   UnionKey
	Variant string
	Payload *ExprKey
}

func (*LitUnion) exprNode()        {}
func (l *LitUnion) String() string { return l.Variant }

// LitNil and LitError are rejected at codegen time like LitString.
type LitNil struct{ Node }

func (*LitNil) exprNode()        {}
func (*LitNil) String() string   { return "nil" }

type LitError struct{ Node }

func (*LitError) exprNode()        {}
func (*LitError) String() string   { return "error" }

// --- Identifiers -----------------------------------------------------------

// Ident references a name that may already be resolved to a VarKey
// (spec.md §3: "identifier references (by name or directly by VarKey)").
type Ident struct {
	Node
	Name string
	Var  *VarKey
}

func (*Ident) exprNode()        {}
func (i *Ident) String() string { return i.Name }

// --- Operators ---------------------------------------------------------

type UnaryOp struct {
	Node
	Op      string // "!" or "-"
	Operand ExprKey
}

func (*UnaryOp) exprNode()        {}
func (u *UnaryOp) String() string { return fmt.Sprintf("%s(..)", u.Op) }

type BinaryOp struct {
	Node
	Op  string // "+","-","*","/","%","==","!=","<","<=",">",">=","&&","||"
	LHS ExprKey
	RHS ExprKey
}

func (*BinaryOp) exprNode()        {}
func (b *BinaryOp) String() string { return fmt.Sprintf("(.. %s ..)", b.Op) }

// --- Tuples ---------------------------------------------------------------

type TupleFieldInit struct {
	Name  *string
	Value ExprKey
}

type TupleCons struct {
	Node
	Fields []TupleFieldInit
}

func (*TupleCons) exprNode()        {}
func (t *TupleCons) String() string { return "tuple(..)" }

// TupleFieldAccess accesses a tuple field by index or by name
// (spec.md §3, §4.3 step 6, §4.4.1/§4.4.2).
type TupleFieldAccess struct {
	Node
	Base  ExprKey
	Index *int
	Name  *string
}

func (*TupleFieldAccess) exprNode() {}
func (t *TupleFieldAccess) String() string {
	if t.Name != nil {
		return fmt.Sprintf("..%s", *t.Name)
	}
	return fmt.Sprintf("..%d", *t.Index)
}

// --- Arrays ----------------------------------------------------------------

type ArrayCons struct {
	Node
	Elements []ExprKey
}

func (*ArrayCons) exprNode()        {}
func (a *ArrayCons) String() string { return "array(..)" }

type ArrayElementAccess struct {
	Node
	Array ExprKey
	Index ExprKey
}

func (*ArrayElementAccess) exprNode()        {}
func (a *ArrayElementAccess) String() string { return "..[..]" }

// ArrayRange represents an array-size or generator range `lo..hi`.
type ArrayRange struct {
	Node
	Start ExprKey
	End   ExprKey
}

func (*ArrayRange) exprNode()        {}
func (a *ArrayRange) String() string { return "..(range)"  }

// --- Cast & membership -------------------------------------------------

type Cast struct {
	Node
	Value  ExprKey
	Target Type
}

func (*Cast) exprNode()        {}
func (c *Cast) String() string { return fmt.Sprintf("(.. as %s)", c.Target) }

// In represents `value in collection`.
type In struct {
	Node
	Value      ExprKey
	Collection ExprKey
}

func (*In) exprNode()        {}
func (*In) String() string   { return ".. in .." }

// --- Generators --------------------------------------------------------

type GenBinder struct {
	Var   string
	Range ExprKey
}

// Generator is a comprehension-style expression with one or more
// range binders and a list of boolean conditions, as spec.md §3 calls
// for ("generators with range and condition lists").
type Generator struct {
	Node
	Binders    []GenBinder
	Conditions []ExprKey
	Body       ExprKey
}

func (*Generator) exprNode()        {}
func (g *Generator) String() string { return "forall(..)" }

// --- Select (ternary) ---------------------------------------------------

type Select struct {
	Node
	Cond ExprKey
	Then ExprKey
	Else ExprKey
}

func (*Select) exprNode()        {}
func (*Select) String() string   { return "select(.., .., ..)" }

// --- Match ---------------------------------------------------------------

// MatchPattern matches a union variant, optionally binding its payload.
type MatchPattern struct {
	Variant string
	Binder  *string
}

type MatchBranch struct {
	Pattern MatchPattern
	Value   ExprKey
}

type Match struct {
	Node
	Scrutinee ExprKey
	Branches  []MatchBranch
	Else      *ExprKey
}

func (*Match) exprNode() {}
func (m *Match) String() string {
	names := make([]string, len(m.Branches))
	for i, b := range m.Branches {
		names[i] = b.Pattern.Variant
	}
	return fmt.Sprintf("match .. { %s }", strings.Join(names, ", "))
}

// --- Storage access ------------------------------------------------------

// StorageAccess references a declared storage variable by name, local
// to the enclosing predicate or qualified through a named interface
// instance for external access (spec.md §3 invariant 4, §4.4.2).
type StorageAccess struct {
	Node
	Name             string
	InterfaceInstance *string // nil => local storage
}

func (*StorageAccess) exprNode() {}
func (s *StorageAccess) String() string {
	if s.InterfaceInstance != nil {
		return fmt.Sprintf("%s::storage::%s", *s.InterfaceInstance, s.Name)
	}
	return fmt.Sprintf("storage::%s", s.Name)
}

// NextState wraps a storage-rooted expression chain with the `'`
// (primed / next-state) marker. It is consumed entirely during path
// compilation (spec.md §4.4.1) and must never survive to the general
// expression compiler.
type NextState struct {
	Node
	Inner ExprKey
}

func (*NextState) exprNode()        {}
func (*NextState) String() string   { return "..'" }

// --- Intrinsics & macros -------------------------------------------------

// IntrinsicCall calls a compiler intrinsic by name (spec.md §4.4.1,
// §4.4.2 list which intrinsic suffixes are recognized).
type IntrinsicCall struct {
	Node
	Name string
	Args []ExprKey
}

func (*IntrinsicCall) exprNode()        {}
func (i *IntrinsicCall) String() string { return fmt.Sprintf("%s(..)", i.Name) }

// MacroCallPlaceholder stands in for a macro call the surface compiler
// could not expand; its presence is recorded at contract level as a
// removed-macro-call marker so later passes can suppress cascading
// errors (spec.md §3, §9 "Open questions").
type MacroCallPlaceholder struct {
	Node
	Name string
}

func (*MacroCallPlaceholder) exprNode()        {}
func (m *MacroCallPlaceholder) String() string { return fmt.Sprintf("macro!%s(..)", m.Name) }

// IsAtomic reports whether expr needs no further decomposition to
// appear directly as an operand — literals, identifiers and already-
// resolved var references. Mirrors the teacher's core.IsAtomic; no
// lowering pass calls it.
func IsAtomic(e Expr) bool {
	switch e.(type) {
	case *LitInt, *LitB256, *LitBool, *LitString, *Ident:
		return true
	default:
		return false
	}
}
