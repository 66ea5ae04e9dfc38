package ir

import (
	"fmt"
	"strings"
)

// Type is the closed tagged union described in spec.md §3. Every
// variant is a distinct Go type implementing the marker method so a
// type switch on Type is exhaustive-checkable the way the teacher's
// internal/types.Type interface is switched over in
// internal/types/unification.go.
type Type interface {
	isType()
	String() string
}

// PrimKind enumerates the primitive leaves.
type PrimKind int

const (
	TBool PrimKind = iota
	TInt
	TReal
	TString
	TB256 // 256-bit big integer, carried as four words
)

func (k PrimKind) String() string {
	switch k {
	case TBool:
		return "bool"
	case TInt:
		return "int"
	case TReal:
		return "real"
	case TString:
		return "string"
	case TB256:
		return "b256"
	default:
		return "?prim"
	}
}

// Primitive is a primitive scalar type.
type Primitive struct{ Kind PrimKind }

func (*Primitive) isType()          {}
func (p *Primitive) String() string { return p.Kind.String() }

// TupleField is one (optional name, type) member of a Tuple.
type TupleField struct {
	Name *string
	Type Type
}

// Tuple is an ordered list of named-or-positional fields.
type Tuple struct{ Fields []TupleField }

func (*Tuple) isType() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		if f.Name != nil {
			parts[i] = fmt.Sprintf("%s: %s", *f.Name, f.Type)
		} else {
			parts[i] = f.Type.String()
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NamedFields reports whether every field of the tuple carries a name
// (spec.md §4.3 step 5: "tuples with named fields are order-independent").
func (t *Tuple) NamedFields() bool {
	for _, f := range t.Fields {
		if f.Name == nil {
			return false
		}
	}
	return len(t.Fields) > 0
}

// FieldIndex looks up a field by position.
func (t *Tuple) FieldIndex(i int) (TupleField, bool) {
	if i < 0 || i >= len(t.Fields) {
		return TupleField{}, false
	}
	return t.Fields[i], true
}

// FieldByName looks up a field by name.
func (t *Tuple) FieldByName(name string) (int, TupleField, bool) {
	for i, f := range t.Fields {
		if f.Name != nil && *f.Name == name {
			return i, f, true
		}
	}
	return -1, TupleField{}, false
}

// Array is an element type plus a size expression that is resolved to
// a concrete integer by the fix-array-sizes pass (spec.md §4.3 step 1).
type Array struct {
	Elem     Type
	SizeExpr ExprKey // the surface range expression, if any
	Resolved *int64  // nil until fix-array-sizes resolves it
}

func (*Array) isType() {}
func (a *Array) String() string {
	if a.Resolved != nil {
		return fmt.Sprintf("[%s; %d]", a.Elem, *a.Resolved)
	}
	return fmt.Sprintf("[%s; ?]", a.Elem)
}

// Map is a key-type to value-type association (storage-only; never
// scalarized, since map entries are addressed dynamically in storage).
type Map struct {
	Key   Type
	Value Type
}

func (*Map) isType()          {}
func (m *Map) String() string { return fmt.Sprintf("map(%s => %s)", m.Key, m.Value) }

// Alias names another type (spec.md's NewType aliases).
type Alias struct {
	Name   string
	Target Type
}

func (*Alias) isType()          {}
func (a *Alias) String() string { return a.Name }

// UnionRef refers to a union/enum declaration by key.
type UnionRef struct {
	Name string
	Key  UnionKey
}

func (*UnionRef) isType()          {}
func (u *UnionRef) String() string { return u.Name }

// Resolve follows Alias chains to the underlying non-alias type.
func Resolve(t Type) Type {
	for {
		a, ok := t.(*Alias)
		if !ok {
			return t
		}
		t = a.Target
	}
}

// Size returns the number of operand-stack words a value of this type
// occupies (spec.md §3 "Type ... size (words on the operand stack)").
func Size(t Type) int {
	switch rt := Resolve(t).(type) {
	case *Primitive:
		if rt.Kind == TB256 {
			return 4
		}
		return 1
	case *Tuple:
		n := 0
		for _, f := range rt.Fields {
			n += Size(f.Type)
		}
		return n
	case *Array:
		if rt.Resolved == nil {
			return 0
		}
		return int(*rt.Resolved) * Size(rt.Elem)
	case *Map:
		return 0 // maps are never held as values
	case *UnionRef:
		return 1 // variant tag/discriminant, one word
	default:
		return 0
	}
}

// StorageSlots returns the number of words a value of this type
// occupies when stored in state (spec.md §3 "storage_slots").
// Identical to Size for every scalarizable type; kept distinct because
// the spec calls the two queries out separately and a future storage
// layout (e.g. packed encodings) could diverge from stack width.
func StorageSlots(t Type) int {
	return Size(t)
}

// IsComposite reports whether t is a tuple or array. C4's storage-key
// compilation decides on a trailing offset slot with IsPrimitiveOrMap,
// not with this function.
func IsComposite(t Type) bool {
	switch Resolve(t).(type) {
	case *Tuple, *Array:
		return true
	default:
		return false
	}
}

// IsPrimitiveOrMap reports whether t is primitive or map-typed — the
// predicate spec.md §4.4.2 uses to decide whether a storage key needs
// a trailing zero offset slot.
func IsPrimitiveOrMap(t Type) bool {
	switch Resolve(t).(type) {
	case *Primitive, *Map:
		return true
	default:
		return false
	}
}
