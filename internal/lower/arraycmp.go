package lower

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// ArrayCompareLowering expands `==`/`!=` between two equal-resolved-size
// arrays into an AND-chain of elementwise comparisons, run to fixpoint
// so nested arrays decompose fully (spec.md §4.3 step 3).
func ArrayCompareLowering(c *ir.Contract, h *diag.Handler) {
	for iter := 0; ; iter++ {
		if iter >= maxFixpointIterations {
			h.Emit(diag.Internal("array-compare-lowering did not reach a fixpoint", extern.Span{}))
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
			larr, lok := ir.Resolve(lt).(*ir.Array)
			rarr, rok := ir.Resolve(rt).(*ir.Array)
			if !lok || !rok || larr.Resolved == nil || rarr.Resolved == nil {
				continue
			}
			n := int(*larr.Resolved)
			if n != int(*rarr.Resolved) {
				h.Emit(diag.MismatchedArrayComparisonSizes(bin.SpanOf(), bin.Op, n, int(*rarr.Resolved)))
				continue
			}

			replaced := expandElementwise(c, bin, n, larr.Elem)
			c.SetExpr(key, replaced)
			c.SetExprType(key, &ir.Primitive{Kind: ir.TBool})
			changed = true
		}
		if !changed {
			return
		}
	}
}

// expandElementwise builds `a[0] op b[0] && a[1] op b[1] && ...`.
func expandElementwise(c *ir.Contract, bin *ir.BinaryOp, n int, elemType ir.Type) ir.Expr {
	span := bin.SpanOf()
	var acc ir.ExprKey
	for i := 0; i < n; i++ {
		idx := c.AddExpr(&ir.LitInt{Node: ir.Node{Span: span}, Value: int64(i)}, &ir.Primitive{Kind: ir.TInt})
		lhsElem := c.AddExpr(&ir.ArrayElementAccess{Node: ir.Node{Span: span}, Array: bin.LHS, Index: idx}, elemType)
		rhsElem := c.AddExpr(&ir.ArrayElementAccess{Node: ir.Node{Span: span}, Array: bin.RHS, Index: idx}, elemType)
		cmp := c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: bin.Op, LHS: lhsElem, RHS: rhsElem}, &ir.Primitive{Kind: ir.TBool})
		c.SetExprType(cmp, &ir.Primitive{Kind: ir.TBool})
		if i == 0 {
			acc = cmp
			continue
		}
		combined := c.AddExpr(&ir.BinaryOp{Node: ir.Node{Span: span}, Op: "&&", LHS: acc, RHS: cmp}, &ir.Primitive{Kind: ir.TBool})
		acc = combined
	}
	result, _ := c.Expr(acc)
	return result
}
