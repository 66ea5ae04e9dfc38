package visit

import (
	"testing"

	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

func buildSimpleContract() (*ir.Contract, *ir.Predicate, ir.ExprKey, ir.ExprKey, ir.ExprKey) {
	c := ir.NewContract()
	p := ir.NewPredicate("P")

	span := extern.Span{}
	xKey := c.AddExpr(&ir.Ident{Node: ir.Node{Span: span}, Name: "x"}, &ir.Primitive{Kind: ir.TInt})
	yKey := c.AddExpr(&ir.Ident{Node: ir.Node{Span: span}, Name: "y"}, &ir.Primitive{Kind: ir.TInt})
	eqKey := c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "==", LHS: xKey, RHS: yKey}, &ir.Primitive{Kind: ir.TBool})

	p.Constraints = append(p.Constraints, ir.ConstraintDecl{Expr: eqKey})
	c.AddPredicate(p)
	return c, p, xKey, yKey, eqKey
}

func TestRootSetIncludesConstraintsStatesAndInstances(t *testing.T) {
	c, p, _, _, eqKey := buildSimpleContract()

	stKey := c.AddExpr(&ir.StorageAccess{Name: "bal"}, &ir.Primitive{Kind: ir.TInt})
	p.AddState(&ir.State{Name: "s", Expr: stKey}, &ir.Primitive{Kind: ir.TInt})

	addrKey := c.AddExpr(&ir.LitB256{}, &ir.Primitive{Kind: ir.TB256})
	p.InterfaceInstances = append(p.InterfaceInstances, ir.InterfaceInstance{Name: "Foo", Address: addrKey})

	roots := RootSet(p)
	want := map[ir.ExprKey]bool{eqKey: true, stKey: true, addrKey: true}
	for k := range want {
		found := false
		for _, r := range roots {
			if r == k {
				found = true
			}
		}
		if !found {
			t.Fatalf("RootSet missing expected root %v; got %v", k, roots)
		}
	}
}

func TestWalkVisitsChildren(t *testing.T) {
	c, p, xKey, yKey, eqKey := buildSimpleContract()

	var visited []ir.ExprKey
	WalkPredicate(c, p, ParentsFirst, func(k ir.ExprKey) bool {
		visited = append(visited, k)
		return true
	})

	for _, want := range []ir.ExprKey{xKey, yKey, eqKey} {
		found := false
		for _, v := range visited {
			if v == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("Walk should have visited %v; got %v", want, visited)
		}
	}
}

func TestWalkChildrenFirstOrder(t *testing.T) {
	c, p, xKey, _, eqKey := buildSimpleContract()

	positions := make(map[ir.ExprKey]int)
	i := 0
	WalkPredicate(c, p, ChildrenFirst, func(k ir.ExprKey) bool {
		positions[k] = i
		i++
		return true
	})

	if positions[xKey] >= positions[eqKey] {
		t.Fatalf("children-first order should visit the child (x) before the parent (eq): %v", positions)
	}
}

func TestReplaceExprsRewritesExpressionTableAndConstraints(t *testing.T) {
	c, p, xKey, yKey, eqKey := buildSimpleContract()

	newY := c.AddExpr(&ir.LitInt{Value: 7}, &ir.Primitive{Kind: ir.TInt})
	ReplaceExprs(c, p, yKey, newY)

	e, _ := c.Expr(eqKey)
	bin := e.(*ir.BinaryOp)
	if bin.RHS != newY {
		t.Fatalf("ReplaceExprs should rewrite the binary op's RHS, got %v want %v", bin.RHS, newY)
	}
	if bin.LHS != xKey {
		t.Fatalf("ReplaceExprs should not touch unrelated references")
	}
}

func TestReplaceExprsRewritesStateAndInterfaceInstance(t *testing.T) {
	c, p, _, _, _ := buildSimpleContract()

	stKey := c.AddExpr(&ir.StorageAccess{Name: "bal"}, &ir.Primitive{Kind: ir.TInt})
	sk := p.AddState(&ir.State{Name: "s", Expr: stKey}, &ir.Primitive{Kind: ir.TInt})

	addrKey := c.AddExpr(&ir.LitB256{}, &ir.Primitive{Kind: ir.TB256})
	p.InterfaceInstances = append(p.InterfaceInstances, ir.InterfaceInstance{Name: "Foo", Address: addrKey})

	newAddr := c.AddExpr(&ir.LitB256{Words: [4]uint64{1, 2, 3, 4}}, &ir.Primitive{Kind: ir.TB256})
	ReplaceExprs(c, p, addrKey, newAddr)

	if p.InterfaceInstances[0].Address != newAddr {
		t.Fatalf("ReplaceExprs should rewrite interface-instance addresses")
	}

	st, _ := p.State(sk)
	if st.Expr != stKey {
		t.Fatalf("ReplaceExprs should not disturb unrelated state expressions")
	}
}

func TestUpdateTypesAppliesToEveryLiveType(t *testing.T) {
	c, p, xKey, _, _ := buildSimpleContract()
	_ = xKey

	seen := 0
	UpdateTypes(c, false, func(t ir.Type) ir.Type {
		seen++
		return t
	})
	if seen == 0 {
		t.Fatalf("UpdateTypes should visit at least the expression and var types")
	}
	_ = p
}
