package lower

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
	"github.com/pintlang/pintc/internal/ir/visit"
)

// FixArraySizes resolves every unresolved array size in the contract
// (spec.md §4.3 step 1). A size expression is either a compile-time
// integer (rejected with InvalidConstArrayLength unless positive), a
// reference to a union/enum declaration (which yields its variant
// count), or it is rejected with NonConstArrayLength.
// Nested arrays (an array of arrays) are resolved innermost-first.
func FixArraySizes(c *ir.Contract, h *diag.Handler) {
	visit.UpdateTypes(c, false, func(t ir.Type) ir.Type {
		resolveArraySizes(c, h, t)
		return t
	})
}

func resolveArraySizes(c *ir.Contract, h *diag.Handler, t ir.Type) {
	switch v := ir.Resolve(t).(type) {
	case *ir.Array:
		resolveArraySizes(c, h, v.Elem)
		if v.Resolved != nil {
			return
		}
		n, ok := resolveArrayLength(c, v.SizeExpr)
		if !ok {
			h.Emit(diag.NonConstArrayLength(spanOf(c, v.SizeExpr)))
			return
		}
		if n <= 0 {
			h.Emit(diag.InvalidConstArrayLength(spanOf(c, v.SizeExpr), n))
			return
		}
		v.Resolved = &n
	case *ir.Tuple:
		for _, f := range v.Fields {
			resolveArraySizes(c, h, f.Type)
		}
	case *ir.Map:
		resolveArraySizes(c, h, v.Key)
		resolveArraySizes(c, h, v.Value)
	}
}

// resolveArrayLength evaluates an array's size expression to a
// compile-time length: either a constant integer, or a name resolving
// to a union/enum declaration's variant count.
func resolveArrayLength(c *ir.Contract, key ir.ExprKey) (int64, bool) {
	if e, ok := c.Expr(key); ok {
		if id, ok := e.(*ir.Ident); ok {
			if u, ok := unionByName(c, id.Name); ok {
				return int64(len(u.Variants)), true
			}
		}
	}
	v, err := Eval(c, key)
	if err != nil {
		return 0, false
	}
	n, ok := v.AsInt()
	return n, ok
}

func unionByName(c *ir.Contract, name string) (*ir.UnionDecl, bool) {
	for _, k := range c.UnionKeys() {
		if u, ok := c.Union(k); ok && u.Name == name {
			return u, true
		}
	}
	return nil, false
}

func spanOf(c *ir.Contract, key ir.ExprKey) (span extern.Span) {
	if e, ok := c.Expr(key); ok {
		return e.SpanOf()
	}
	return span
}
