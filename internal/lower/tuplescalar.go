package lower

import (
	"fmt"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// TupleScalarize replaces every tuple-typed decision variable with one
// fresh child variable per field, rewriting every TupleFieldAccess in
// place, iterated to fixpoint to unwind nested tuples (spec.md §4.3
// step 6).
func TupleScalarize(c *ir.Contract, h *diag.Handler) {
	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		scalarizeTuplesInPredicate(c, p, h)
		return true
	})
}

func scalarizeTuplesInPredicate(c *ir.Contract, p *ir.Predicate, h *diag.Handler) {
	for iter := 0; ; iter++ {
		if iter >= maxFixpointIterations {
			h.Emit(diag.Internal(fmt.Sprintf("tuple-scalarize did not reach a fixpoint in predicate %q", p.Name), extern.Span{}))
			return
		}
		var target ir.VarKey
		var targetTup *ir.Tuple
		found := false
		p.EachVar(func(k ir.VarKey, _ *ir.Var) bool {
			t, ok := p.VarType(k)
			if !ok {
				return true
			}
			if tup, ok := ir.Resolve(t).(*ir.Tuple); ok {
				target, targetTup, found = k, tup, true
				return false
			}
			return true
		})
		if !found {
			return
		}
		scalarizeOneTupleVar(c, p, target, targetTup)
	}
}

func scalarizeOneTupleVar(c *ir.Contract, p *ir.Predicate, vk ir.VarKey, tup *ir.Tuple) {
	v, _ := p.Var(vk)
	named := tup.NamedFields()

	childKeys := make([]ir.VarKey, len(tup.Fields))
	for i, f := range tup.Fields {
		var name string
		if named {
			name = fmt.Sprintf("%s.%s", v.Name, *f.Name)
		} else {
			name = fmt.Sprintf("%s.%d", v.Name, i)
		}
		childKeys[i] = p.AddVar(&ir.Var{Name: name, IsPub: v.IsPub}, f.Type)
	}

	if initExpr, ok := p.VarInit[vk]; ok {
		if cons, ok := c.Expr(initExpr); ok {
			if lit, ok := cons.(*ir.TupleCons); ok && len(lit.Fields) == len(tup.Fields) {
				for i, f := range lit.Fields {
					p.VarInit[childKeys[i]] = f.Value
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
		access, ok := e.(*ir.TupleFieldAccess)
		if !ok {
			continue
		}
		base, ok := c.Expr(access.Base)
		if !ok {
			continue
		}
		id, ok := base.(*ir.Ident)
		if !ok || id.Var == nil || *id.Var != vk {
			continue
		}

		idx := -1
		if access.Name != nil {
			for i, f := range tup.Fields {
				if f.Name != nil && *f.Name == *access.Name {
					idx = i
					break
				}
			}
		} else if access.Index != nil {
			idx = *access.Index
		}
		if idx < 0 || idx >= len(childKeys) {
			continue
		}

		child := childKeys[idx]
		c.SetExpr(key, &ir.Ident{Node: ir.Node{Span: access.SpanOf()}, Name: mustName(p, child), Var: &child})
		c.SetExprType(key, tup.Fields[idx].Type)
	}

	p.RemoveVar(vk)
}
