// Package visit implements the depth-first traversal and
// whole-contract rewrite operations of SPEC_FULL.md §4.2 (C2 — IR
// traversal & rewrite), layered over internal/ir's slot-mapped tables.
package visit

import "github.com/pintlang/pintc/internal/ir"

// Order selects which of the two traversal orders a Walk uses.
type Order int

const (
	// ParentsFirst visits a node before its children — used for
	// top-down rewrites.
	ParentsFirst Order = iota
	// ChildrenFirst visits a node's children before the node itself —
	// used for type-inference-style folds.
	ChildrenFirst
)

// Visitor is called once per reachable expression key. Returning
// false stops the traversal early.
type Visitor func(ir.ExprKey) bool

// RootSet collects every expression a predicate's traversal must start
// from (spec.md §4.2): constraint expressions, state expressions,
// interface-instance addresses, predicate-instance addresses.
func RootSet(p *ir.Predicate) []ir.ExprKey {
	var roots []ir.ExprKey

	var collectConstraints func(cds []ir.ConstraintDecl)
	collectConstraints = func(cds []ir.ConstraintDecl) {
		for _, cd := range cds {
			roots = append(roots, cd.Expr)
		}
	}
	var collectIf func(ifd ir.IfDecl)
	var collectMatch func(md ir.MatchDecl)

	collectIf = func(ifd ir.IfDecl) {
		roots = append(roots, ifd.Cond)
		collectConstraints(ifd.Then)
		for _, nested := range ifd.ThenIfs {
			collectIf(nested)
		}
		for _, nested := range ifd.ThenMatches {
			collectMatch(nested)
		}
		collectConstraints(ifd.Else)
		for _, nested := range ifd.ElseIfs {
			collectIf(nested)
		}
		for _, nested := range ifd.ElseMatches {
			collectMatch(nested)
		}
	}

	collectMatch = func(md ir.MatchDecl) {
		roots = append(roots, md.Scrutinee)
		for _, arm := range md.Arms {
			collectConstraints(arm.Constraints)
			for _, nested := range arm.Ifs {
				collectIf(nested)
			}
			for _, nested := range arm.Matches {
				collectMatch(nested)
			}
		}
	}

	collectConstraints(p.Constraints)
	for _, ifd := range p.Ifs {
		collectIf(ifd)
	}
	for _, md := range p.Matches {
		collectMatch(md)
	}

	p.EachState(func(_ ir.StateKey, s *ir.State) bool {
		roots = append(roots, s.Expr)
		return true
	})

	for _, inst := range p.InterfaceInstances {
		roots = append(roots, inst.Address)
	}
	for _, inst := range p.PredicateInstances {
		if inst.Address != nil {
			roots = append(roots, *inst.Address)
		}
	}
	for _, init := range p.VarInit {
		roots = append(roots, init)
	}

	return roots
}

// children returns every ExprKey directly referenced by e, including
// the implicit range expression held inside an Array type when the
// caller also knows e's type (spec.md §4.2: "including implicit ones
// (array range expressions held in types)"). The contract's type
// table supplies that type.
func children(c *ir.Contract, key ir.ExprKey) []ir.ExprKey {
	e, ok := c.Expr(key)
	if !ok {
		return nil
	}
	var out []ir.ExprKey
	switch v := e.(type) {
	case *ir.LitArray:
		out = append(out, v.Elements...)
	case *ir.LitTuple:
		out = append(out, v.Elements...)
	case *ir.LitUnion:
		if v.Payload != nil {
			out = append(out, *v.Payload)
		}
	case *ir.UnaryOp:
		out = append(out, v.Operand)
	case *ir.BinaryOp:
		out = append(out, v.LHS, v.RHS)
	case *ir.TupleCons:
		for _, f := range v.Fields {
			out = append(out, f.Value)
		}
	case *ir.TupleFieldAccess:
		out = append(out, v.Base)
	case *ir.ArrayCons:
		out = append(out, v.Elements...)
	case *ir.ArrayElementAccess:
		out = append(out, v.Array, v.Index)
	case *ir.ArrayRange:
		out = append(out, v.Start, v.End)
	case *ir.Cast:
		out = append(out, v.Value)
		out = append(out, typeExprChildren(v.Target)...)
	case *ir.In:
		out = append(out, v.Value, v.Collection)
	case *ir.Generator:
		for _, b := range v.Binders {
			out = append(out, b.Range)
		}
		out = append(out, v.Conditions...)
		out = append(out, v.Body)
	case *ir.Select:
		out = append(out, v.Cond, v.Then, v.Else)
	case *ir.Match:
		out = append(out, v.Scrutinee)
		for _, b := range v.Branches {
			out = append(out, b.Value)
		}
		if v.Else != nil {
			out = append(out, *v.Else)
		}
	case *ir.NextState:
		out = append(out, v.Inner)
	case *ir.IntrinsicCall:
		out = append(out, v.Args...)
	}
	if t, ok := c.ExprType(key); ok {
		out = append(out, typeExprChildren(t)...)
	}
	return out
}

// typeExprChildren returns the expression keys a type holds — only an
// Array's (possibly already-resolved) size expression today.
func typeExprChildren(t ir.Type) []ir.ExprKey {
	if a, ok := ir.Resolve(t).(*ir.Array); ok && a.SizeExpr.Valid() {
		return []ir.ExprKey{a.SizeExpr}
	}
	return nil
}

// Walk visits every expression reachable from roots in the requested
// order, without visiting any key twice.
func Walk(c *ir.Contract, roots []ir.ExprKey, order Order, visit Visitor) {
	seen := make(map[ir.ExprKey]bool)
	var walk func(k ir.ExprKey) bool
	walk = func(k ir.ExprKey) bool {
		if seen[k] {
			return true
		}
		seen[k] = true
		if order == ParentsFirst {
			if !visit(k) {
				return false
			}
		}
		for _, child := range children(c, k) {
			if !walk(child) {
				return false
			}
		}
		if order == ChildrenFirst {
			if !visit(k) {
				return false
			}
		}
		return true
	}
	for _, r := range roots {
		if !walk(r) {
			return
		}
	}
}

// WalkPredicate is a convenience wrapper that starts from a
// predicate's RootSet.
func WalkPredicate(c *ir.Contract, p *ir.Predicate, order Order, visit Visitor) {
	Walk(c, RootSet(p), order, visit)
}
