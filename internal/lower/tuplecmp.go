package lower

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// TupleCompareLowering expands `==`/`!=` between two tuples field-by-
// field: named accessors when both sides have fully-named fields,
// positional indices otherwise (spec.md §4.3 step 5).
func TupleCompareLowering(c *ir.Contract, h *diag.Handler) {
	for iter := 0; ; iter++ {
		if iter >= maxFixpointIterations {
			h.Emit(diag.Internal("tuple-compare-lowering did not reach a fixpoint", extern.Span{}))
			return
		}
		changed := false
		for _, key := range c.ExprKeys() {
			e, ok := c.Expr(key)
			if !ok {
				continue
			}
			bin, ok := e.(*ir.BinaryOp)
			if !ok || (bin.Op != "==" && bin.Op != "!=") {
				continue
			}
			lt, lok := c.ExprType(bin.LHS)
			rt, rok := c.ExprType(bin.RHS)
			if !lok || !rok {
				continue
			}
			ltup, lok := ir.Resolve(lt).(*ir.Tuple)
			rtup, rok := ir.Resolve(rt).(*ir.Tuple)
			if !lok || !rok {
				continue
			}

			replaced := expandTupleCompare(c, bin, ltup, rtup)
			c.SetExpr(key, replaced)
			c.SetExprType(key, &ir.Primitive{Kind: ir.TBool})
			changed = true
		}
		if !changed {
			return
		}
	}
}

func expandTupleCompare(c *ir.Contract, bin *ir.BinaryOp, ltup, rtup *ir.Tuple) ir.Expr {
	span := bin.SpanOf()
	named := ltup.NamedFields() && rtup.NamedFields()

	var acc ir.ExprKey
	for i, lf := range ltup.Fields {
		var lAccess, rAccess ir.Expr
		if named {
			name := *lf.Name
			lAccess = &ir.TupleFieldAccess{Node: ir.Node{Span: span}, Base: bin.LHS, Name: &name}
			rAccess = &ir.TupleFieldAccess{Node: ir.Node{Span: span}, Base: bin.RHS, Name: &name}
		} else {
			idx := i
			lAccess = &ir.TupleFieldAccess{Node: ir.Node{Span: span}, Base: bin.LHS, Index: &idx}
			rAccess = &ir.TupleFieldAccess{Node: ir.Node{Span: span}, Base: bin.RHS, Index: &idx}
		}
		lKey := c.AddExpr(lAccess, lf.Type)
		rKey := c.AddExpr(rAccess, lf.Type)
		cmp := c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: bin.Op, LHS: lKey, RHS: rKey}, &ir.Primitive{Kind: ir.TBool})

		if i == 0 {
			acc = cmp
			continue
		}
		acc = c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "&&", LHS: acc, RHS: cmp}, &ir.Primitive{Kind: ir.TBool})
	}
	result, _ := c.Expr(acc)
	return result
}
