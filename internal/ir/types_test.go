package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSizePrimitives(t *testing.T) {
	cases := []struct {
		t    Type
		want int
	}{
		{&Primitive{Kind: TBool}, 1},
		{&Primitive{Kind: TInt}, 1},
		{&Primitive{Kind: TB256}, 4},
	}
	for _, c := range cases {
		if got := Size(c.t); got != c.want {
			t.Errorf("Size(%s) = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestSizeTuple(t *testing.T) {
	tup := &Tuple{Fields: []TupleField{
		{Type: &Primitive{Kind: TInt}},
		{Type: &Primitive{Kind: TB256}},
	}}
	if got := Size(tup); got != 5 {
		t.Fatalf("Size(tuple) = %d, want 5", got)
	}
	if got := StorageSlots(tup); got != 5 {
		t.Fatalf("StorageSlots(tuple) = %d, want 5", got)
	}
}

func TestSizeArrayResolved(t *testing.T) {
	n := int64(3)
	arr := &Array{Elem: &Primitive{Kind: TInt}, Resolved: &n}
	if got := Size(arr); got != 3 {
		t.Fatalf("Size(array) = %d, want 3", got)
	}
}

func TestSizeArrayUnresolved(t *testing.T) {
	arr := &Array{Elem: &Primitive{Kind: TInt}}
	if got := Size(arr); got != 0 {
		t.Fatalf("Size(unresolved array) = %d, want 0", got)
	}
}

func TestIsCompositeAndPrimitiveOrMap(t *testing.T) {
	prim := &Primitive{Kind: TInt}
	m := &Map{Key: prim, Value: prim}
	tup := &Tuple{Fields: []TupleField{{Type: prim}}}

	if IsComposite(prim) {
		t.Fatalf("primitive should not be composite")
	}
	if !IsComposite(tup) {
		t.Fatalf("tuple should be composite")
	}
	if !IsPrimitiveOrMap(prim) {
		t.Fatalf("primitive should satisfy IsPrimitiveOrMap")
	}
	if !IsPrimitiveOrMap(m) {
		t.Fatalf("map should satisfy IsPrimitiveOrMap")
	}
	if IsPrimitiveOrMap(tup) {
		t.Fatalf("tuple should not satisfy IsPrimitiveOrMap")
	}
}

func TestResolveAlias(t *testing.T) {
	prim := &Primitive{Kind: TInt}
	alias := &Alias{Name: "MyInt", Target: prim}
	nested := &Alias{Name: "AlsoMyInt", Target: alias}

	if Resolve(nested) != Type(prim) {
		t.Fatalf("Resolve should follow alias chains to the underlying type")
	}
}

func TestTupleNamedFields(t *testing.T) {
	name := "x"
	named := &Tuple{Fields: []TupleField{{Name: &name, Type: &Primitive{Kind: TInt}}}}
	if !named.NamedFields() {
		t.Fatalf("tuple with all named fields should report NamedFields() = true")
	}

	mixed := &Tuple{Fields: []TupleField{{Name: &name, Type: &Primitive{Kind: TInt}}, {Type: &Primitive{Kind: TInt}}}}
	if mixed.NamedFields() {
		t.Fatalf("tuple with a positional field should report NamedFields() = false")
	}
}

// TestTupleFieldLookupAgreesByNameAndIndex exercises spec.md L3: on a
// fully-named tuple, field access by name and by position must yield
// the identical field, which matters because §4.3 pass 5 picks
// whichever accessor the lowered comparison uses.
func TestTupleFieldLookupAgreesByNameAndIndex(t *testing.T) {
	nx, ny := "x", "y"
	tup := &Tuple{Fields: []TupleField{
		{Name: &nx, Type: &Primitive{Kind: TInt}},
		{Name: &ny, Type: &Primitive{Kind: TB256}},
	}}

	byIndex, ok := tup.FieldIndex(1)
	if !ok {
		t.Fatalf("FieldIndex(1) should resolve")
	}
	idx, byName, ok := tup.FieldByName("y")
	if !ok {
		t.Fatalf("FieldByName(%q) should resolve", "y")
	}
	if idx != 1 {
		t.Fatalf("FieldByName index = %d, want 1", idx)
	}

	typeByString := cmp.Comparer(func(a, b Type) bool {
		return a.String() == b.String()
	})
	if diff := cmp.Diff(byIndex, byName, typeByString); diff != "" {
		t.Fatalf("lookup by name and by index disagree (-byIndex +byName):\n%s", diff)
	}
}
