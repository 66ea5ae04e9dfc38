package lower

import (
	"fmt"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// CanonicalizeSolveDirective rewrites a `minimize E` / `maximize E`
// directive into a fresh decision variable `__objective` of E's type, a
// constraint `__objective == E`, and a directive naming `__objective`.
// `satisfy` is left alone. A predicate with no directive at all fails
// with MissingSolveDirective (spec.md §4.3 step 2).
func CanonicalizeSolveDirective(c *ir.Contract, p *ir.Predicate, h *diag.Handler) {
	if p.Directive == nil {
		h.Emit(diag.MissingSolveDirective())
		return
	}
	if p.Directive.Kind == ir.DirSatisfy {
		return
	}
	if p.Directive.Objective != nil {
		return // already canonicalized
	}
	if p.Directive.Expr == nil {
		h.Emit(diag.Internal(fmt.Sprintf("predicate %q has a %s directive with no objective expression", p.Name, p.Directive.Kind), extern.Span{}))
		return
	}

	objExpr := *p.Directive.Expr
	objType, ok := c.ExprType(objExpr)
	if !ok {
		h.Emit(diag.Internal(fmt.Sprintf("predicate %q objective expression has no type", p.Name), extern.Span{}))
		return
	}

	span := extern.Span{}
	if e, ok := c.Expr(objExpr); ok {
		span = e.SpanOf()
	}

	name := ir.FullyQualify("", p.Name, "__objective")
	name = p.Symbols.InsertIfAbsent("", "", name, span)
	objVar := p.AddVar(&ir.Var{Name: name}, objType)

	objIdentKey := c.AddExpr(&ir.Ident{Node: ir.Node{Span: span}, Name: name, Var: &objVar}, objType)
	eqKey := c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "==", LHS: objIdentKey, RHS: objExpr}, &ir.Primitive{Kind: ir.TBool})

	p.Constraints = append(p.Constraints, ir.ConstraintDecl{Expr: eqKey, Span: span})
	p.Directive.Objective = &objVar
}
