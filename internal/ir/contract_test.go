package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pintlang/pintc/internal/extern"
)

func TestContractExprTableInvariants(t *testing.T) {
	c := NewContract()
	span := extern.Span{Path: "t.pnt"}

	k := c.AddExpr(&LitInt{Node: Node{Span: span}, Value: 42}, &Primitive{Kind: TInt})

	e, ok := c.Expr(k)
	require.True(t, ok, "Expr(k) should resolve immediately after AddExpr")
	lit, ok := e.(*LitInt)
	require.True(t, ok, "Expr(k) should be a *LitInt")
	require.Equal(t, int64(42), lit.Value)

	typ, ok := c.ExprType(k)
	require.True(t, ok, "every ExprKey must have exactly one type-table entry (invariant 2)")
	_, ok = typ.(*Primitive)
	require.True(t, ok, "ExprType(k) should be *Primitive")

	c.RemoveExpr(k)
	_, ok = c.Expr(k)
	require.False(t, ok, "Expr(k) should fail after RemoveExpr")
	_, ok = c.ExprType(k)
	require.False(t, ok, "ExprType(k) should fail after RemoveExpr")
}

func TestPredicateVarSlotsDeclarationOrder(t *testing.T) {
	p := NewPredicate("P")
	k1 := p.AddVar(&Var{Name: "x"}, &Primitive{Kind: TInt})
	k2 := p.AddVar(&Var{Name: "y"}, &Primitive{Kind: TBool})

	require.Equal(t, []VarKey{k1, k2}, p.VarKeys())
}

func TestPredicateInstanceLookup(t *testing.T) {
	p := NewPredicate("P")
	name := "Foo"
	p.PredicateInstances = append(p.PredicateInstances, PredicateInstance{
		Name:              "foo_inst",
		InterfaceInstance: &name,
		PredicateIdent:    "Bar",
	})

	inst, ok := p.PredicateInstanceByName("foo_inst")
	require.True(t, ok, "PredicateInstanceByName should find the registered instance")
	require.Equal(t, "Bar", inst.PredicateIdent)

	_, ok = p.PredicateInstanceByName("missing")
	require.False(t, ok, "PredicateInstanceByName should fail for an unknown name")
}

func TestInterfaceInstanceLookup(t *testing.T) {
	p := NewPredicate("P")
	p.InterfaceInstances = append(p.InterfaceInstances, InterfaceInstance{
		Name:          "Foo",
		InterfaceName: "FooIface",
	})
	inst, ok := p.InterfaceInstanceByName("Foo")
	require.True(t, ok, "InterfaceInstanceByName should find the registered instance")
	require.Equal(t, "FooIface", inst.InterfaceName)
}
