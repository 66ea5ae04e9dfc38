package lower

import (
	"fmt"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// ArrayScalarize replaces every array-typed decision variable with one
// fresh scalar variable per element, rewriting every constant-indexed
// access in place, iterated to fixpoint to unwind arrays of arrays
// (spec.md §4.3 step 4).
func ArrayScalarize(c *ir.Contract, h *diag.Handler) {
	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		scalarizeArraysInPredicate(c, p, h)
		return true
	})
}

func scalarizeArraysInPredicate(c *ir.Contract, p *ir.Predicate, h *diag.Handler) {
	for iter := 0; ; iter++ {
		if iter >= maxFixpointIterations {
			h.Emit(diag.Internal(fmt.Sprintf("array-scalarize did not reach a fixpoint in predicate %q", p.Name), extern.Span{}))
			return
		}
		var target ir.VarKey
		var targetArr *ir.Array
		found := false
		p.EachVar(func(k ir.VarKey, _ *ir.Var) bool {
			t, ok := p.VarType(k)
			if !ok {
				return true
			}
			if arr, ok := ir.Resolve(t).(*ir.Array); ok && arr.Resolved != nil {
				target, targetArr, found = k, arr, true
				return false
			}
			return true
		})
		if !found {
			return
		}
		scalarizeOneArrayVar(c, p, target, targetArr, h)
	}
}

func scalarizeOneArrayVar(c *ir.Contract, p *ir.Predicate, vk ir.VarKey, arr *ir.Array, h *diag.Handler) {
	v, _ := p.Var(vk)
	n := int(*arr.Resolved)

	scalarKeys := make([]ir.VarKey, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s[%d]", v.Name, i)
		scalarKeys[i] = p.AddVar(&ir.Var{Name: name, IsPub: v.IsPub}, arr.Elem)
	}

	if initExpr, ok := p.VarInit[vk]; ok {
		if cons, ok := c.Expr(initExpr); ok {
			if lit, ok := cons.(*ir.ArrayCons); ok && len(lit.Elements) == n {
				for i := 0; i < n; i++ {
					p.VarInit[scalarKeys[i]] = lit.Elements[i]
				}
			}
		}
		delete(p.VarInit, vk)
	}

	for _, key := range c.ExprKeys() {
		e, ok := c.Expr(key)
		if !ok {
			continue
		}
		access, ok := e.(*ir.ArrayElementAccess)
		if !ok {
			continue
		}
		base, ok := c.Expr(access.Array)
		if !ok {
			continue
		}
		id, ok := base.(*ir.Ident)
		if !ok || id.Var == nil || *id.Var != vk {
			continue
		}

		idxVal, err := Eval(c, access.Index)
		if err != nil {
			h.Emit(diag.NonConstArrayIndex(access.SpanOf()))
			continue
		}
		idx, ok := idxVal.AsInt()
		if !ok {
			h.Emit(diag.NonConstArrayIndex(access.SpanOf()))
			continue
		}
		if idx < 0 || idx >= int64(n) {
			h.Emit(diag.ArrayIndexOutOfBounds(access.SpanOf(), idx, int64(n)))
			continue
		}

		scalar := scalarKeys[int(idx)]
		c.SetExpr(key, &ir.Ident{Node: ir.Node{Span: access.SpanOf()}, Name: mustName(p, scalar), Var: &scalar})
		c.SetExprType(key, arr.Elem)
	}

	p.RemoveVar(vk)
}

func mustName(p *ir.Predicate, k ir.VarKey) string {
	v, ok := p.Var(k)
	if !ok {
		return ""
	}
	return v.Name
}
