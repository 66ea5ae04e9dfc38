package lower

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// FlattenControlFlow rewrites a predicate's `if`/`match` constraint
// blocks into plain, unconditional ConstraintDecls. A constraint `C`
// nested under guard `cond` becomes `!cond || C`, the standard
// implication encoding of a conditionally-active constraint: the
// rewritten constraint holds vacuously whenever its guard is false and
// is equivalent to `C` whenever the guard is true. Nested blocks
// conjoin their own condition onto every ancestor guard on the way
// down, mirroring the depth-first shape the teacher's own
// IfDecl/MatchDecl traversal uses for collecting constraints
// (original_source/pintc/src/predicate.rs `get_constraints`/
// `replace_exprs`). Takes a handler for symmetry with the rest of the
// pipeline; every guard here is already a contract-resident expression,
// so this pass has no failure mode of its own to report.
func FlattenControlFlow(c *ir.Contract, p *ir.Predicate, _ *diag.Handler) {
	if len(p.Ifs) == 0 && len(p.Matches) == 0 {
		return
	}

	var out []ir.ConstraintDecl
	for _, ifd := range p.Ifs {
		out = append(out, flattenIf(c, ifd, nil)...)
	}
	for _, md := range p.Matches {
		out = append(out, flattenMatch(c, md, nil)...)
	}
	p.Constraints = append(p.Constraints, out...)
	p.Ifs = nil
	p.Matches = nil
}

func flattenIf(c *ir.Contract, ifd ir.IfDecl, ambient *ir.ExprKey) []ir.ConstraintDecl {
	var out []ir.ConstraintDecl

	thenCond := andCond(c, ambient, ifd.Cond)
	for _, cd := range ifd.Then {
		out = append(out, ir.ConstraintDecl{Expr: implies(c, thenCond, cd.Expr), Span: cd.Span})
	}
	for _, nested := range ifd.ThenIfs {
		out = append(out, flattenIf(c, nested, &thenCond)...)
	}
	for _, nested := range ifd.ThenMatches {
		out = append(out, flattenMatch(c, nested, &thenCond)...)
	}

	if len(ifd.Else) > 0 || len(ifd.ElseIfs) > 0 || len(ifd.ElseMatches) > 0 {
		elseCond := andCond(c, ambient, negate(c, ifd.Cond))
		for _, cd := range ifd.Else {
			out = append(out, ir.ConstraintDecl{Expr: implies(c, elseCond, cd.Expr), Span: cd.Span})
		}
		for _, nested := range ifd.ElseIfs {
			out = append(out, flattenIf(c, nested, &elseCond)...)
		}
		for _, nested := range ifd.ElseMatches {
			out = append(out, flattenMatch(c, nested, &elseCond)...)
		}
	}
	return out
}

func flattenMatch(c *ir.Contract, md ir.MatchDecl, ambient *ir.ExprKey) []ir.ConstraintDecl {
	var out []ir.ConstraintDecl
	for _, arm := range md.Arms {
		armCond := andCond(c, ambient, variantCond(c, md.Scrutinee, arm.Pattern))
		for _, cd := range arm.Constraints {
			out = append(out, ir.ConstraintDecl{Expr: implies(c, armCond, cd.Expr), Span: cd.Span})
		}
		for _, nested := range arm.Ifs {
			out = append(out, flattenIf(c, nested, &armCond)...)
		}
		for _, nested := range arm.Matches {
			out = append(out, flattenMatch(c, nested, &armCond)...)
		}
	}
	return out
}

// variantCond builds a boolean expression that is true exactly when
// scrutinee's active union variant matches pattern, reusing the
// existing Match expression form: spec.md §3's closed Expression union
// already supports variant dispatch with an Else arm, so a one-branch
// match with a boolean Then/Else is an "is this variant?" test without
// inventing a new expression kind.
func variantCond(c *ir.Contract, scrutinee ir.ExprKey, pattern ir.MatchPattern) ir.ExprKey {
	span := condSpan(c, scrutinee)
	boolT := &ir.Primitive{Kind: ir.TBool}
	trueKey := c.AddExpr(&ir.LitBool{Node: ir.Node{Span: span}, Value: true}, boolT)
	falseKey := c.AddExpr(&ir.LitBool{Node: ir.Node{Span: span}, Value: false}, boolT)
	m := &ir.Match{
		Node:      ir.Node{Span: span},
		Scrutinee: scrutinee,
		Branches:  []ir.MatchBranch{{Pattern: pattern, Value: trueKey}},
		Else:      &falseKey,
	}
	return c.AddExpr(m, boolT)
}

func andCond(c *ir.Contract, ambient *ir.ExprKey, cond ir.ExprKey) ir.ExprKey {
	if ambient == nil {
		return cond
	}
	span := condSpan(c, cond)
	return c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "&&", LHS: *ambient, RHS: cond}, &ir.Primitive{Kind: ir.TBool})
}

func negate(c *ir.Contract, cond ir.ExprKey) ir.ExprKey {
	span := condSpan(c, cond)
	return c.AddExpr(&ir.UnaryOp{Node: ir.Node{Span: span}, Op: "!", Operand: cond}, &ir.Primitive{Kind: ir.TBool})
}

// implies builds `!cond || body`, the encoding a conditionally-active
// constraint is rewritten to everywhere in this pass.
func implies(c *ir.Contract, cond ir.ExprKey, body ir.ExprKey) ir.ExprKey {
	span := condSpan(c, body)
	notCond := negate(c, cond)
	return c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "||", LHS: notCond, RHS: body}, &ir.Primitive{Kind: ir.TBool})
}

func condSpan(c *ir.Contract, k ir.ExprKey) extern.Span {
	if e, ok := c.Expr(k); ok {
		return e.SpanOf()
	}
	return extern.Span{}
}
