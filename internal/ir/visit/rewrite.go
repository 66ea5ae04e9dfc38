package visit

import "github.com/pintlang/pintc/internal/ir"

// replaceKey swaps *k for new if it currently equals old, reporting
// whether it changed anything.
func replaceKey(k *ir.ExprKey, old, new ir.ExprKey) bool {
	if *k == old {
		*k = new
		return true
	}
	return false
}

func replaceKeySlice(ks []ir.ExprKey, old, new ir.ExprKey) bool {
	changed := false
	for i := range ks {
		if replaceKey(&ks[i], old, new) {
			changed = true
		}
	}
	return changed
}

// replaceInType rewrites the range expression an Array type holds, in
// place, mirroring how the teacher's update_types-style passes mutate
// shared type values (spec.md §4.2: "type table (type-held range
// expressions)").
func replaceInType(t ir.Type, old, new ir.ExprKey) bool {
	if a, ok := ir.Resolve(t).(*ir.Array); ok {
		return replaceKey(&a.SizeExpr, old, new)
	}
	return false
}

func replaceInExpr(e ir.Expr, old, new ir.ExprKey) bool {
	changed := false
	switch v := e.(type) {
	case *ir.LitArray:
		changed = replaceKeySlice(v.Elements, old, new)
	case *ir.LitTuple:
		changed = replaceKeySlice(v.Elements, old, new)
	case *ir.LitUnion:
		if v.Payload != nil {
			changed = replaceKey(v.Payload, old, new)
		}
	case *ir.UnaryOp:
		changed = replaceKey(&v.Operand, old, new)
	case *ir.BinaryOp:
		c1 := replaceKey(&v.LHS, old, new)
		c2 := replaceKey(&v.RHS, old, new)
		changed = c1 || c2
	case *ir.TupleCons:
		for i := range v.Fields {
			if replaceKey(&v.Fields[i].Value, old, new) {
				changed = true
			}
		}
	case *ir.TupleFieldAccess:
		changed = replaceKey(&v.Base, old, new)
	case *ir.ArrayCons:
		changed = replaceKeySlice(v.Elements, old, new)
	case *ir.ArrayElementAccess:
		c1 := replaceKey(&v.Array, old, new)
		c2 := replaceKey(&v.Index, old, new)
		changed = c1 || c2
	case *ir.ArrayRange:
		c1 := replaceKey(&v.Start, old, new)
		c2 := replaceKey(&v.End, old, new)
		changed = c1 || c2
	case *ir.Cast:
		c1 := replaceKey(&v.Value, old, new)
		c2 := replaceInType(v.Target, old, new)
		changed = c1 || c2
	case *ir.In:
		c1 := replaceKey(&v.Value, old, new)
		c2 := replaceKey(&v.Collection, old, new)
		changed = c1 || c2
	case *ir.Generator:
		for i := range v.Binders {
			if replaceKey(&v.Binders[i].Range, old, new) {
				changed = true
			}
		}
		if replaceKeySlice(v.Conditions, old, new) {
			changed = true
		}
		if replaceKey(&v.Body, old, new) {
			changed = true
		}
	case *ir.Select:
		c1 := replaceKey(&v.Cond, old, new)
		c2 := replaceKey(&v.Then, old, new)
		c3 := replaceKey(&v.Else, old, new)
		changed = c1 || c2 || c3
	case *ir.Match:
		changed = replaceKey(&v.Scrutinee, old, new)
		for i := range v.Branches {
			if replaceKey(&v.Branches[i].Value, old, new) {
				changed = true
			}
		}
		if v.Else != nil && replaceKey(v.Else, old, new) {
			changed = true
		}
	case *ir.NextState:
		changed = replaceKey(&v.Inner, old, new)
	case *ir.IntrinsicCall:
		changed = replaceKeySlice(v.Args, old, new)
	}
	return changed
}

func replaceInIf(ifd *ir.IfDecl, old, new ir.ExprKey) {
	replaceKey(&ifd.Cond, old, new)
	for i := range ifd.Then {
		replaceKey(&ifd.Then[i].Expr, old, new)
	}
	for i := range ifd.ThenIfs {
		replaceInIf(&ifd.ThenIfs[i], old, new)
	}
	for i := range ifd.ThenMatches {
		replaceInMatch(&ifd.ThenMatches[i], old, new)
	}
	for i := range ifd.Else {
		replaceKey(&ifd.Else[i].Expr, old, new)
	}
	for i := range ifd.ElseIfs {
		replaceInIf(&ifd.ElseIfs[i], old, new)
	}
	for i := range ifd.ElseMatches {
		replaceInMatch(&ifd.ElseMatches[i], old, new)
	}
}

func replaceInMatch(md *ir.MatchDecl, old, new ir.ExprKey) {
	replaceKey(&md.Scrutinee, old, new)
	for i := range md.Arms {
		arm := &md.Arms[i]
		for j := range arm.Constraints {
			replaceKey(&arm.Constraints[j].Expr, old, new)
		}
		for j := range arm.Ifs {
			replaceInIf(&arm.Ifs[j], old, new)
		}
		for j := range arm.Matches {
			replaceInMatch(&arm.Matches[j], old, new)
		}
	}
}

// ReplaceExprs rewrites every expression reference to old into new,
// everywhere it can appear (spec.md §4.2). When pred is non-nil, the
// predicate-scoped locations (vars, states, constraints, if/match
// decls, var initializers, interface-instance and predicate-instance
// addresses) are rewritten too; when pred is nil only contract-level
// locations are visited.
func ReplaceExprs(c *ir.Contract, pred *ir.Predicate, old, new ir.ExprKey) {
	// The expression table itself (nested keys within each expr).
	c.EachExpr(func(k ir.ExprKey, e ir.Expr) bool {
		if replaceInExpr(e, old, new) {
			c.SetExpr(k, e)
		}
		return true
	})

	// The type table (type-held range expressions).
	for _, k := range c.ExprKeys() {
		if t, ok := c.ExprType(k); ok {
			replaceInType(t, old, new)
		}
	}

	// Const declarations.
	for _, cst := range c.Consts {
		replaceKey(&cst.Expr, old, new)
		if cst.DeclaredType != nil {
			replaceInType(cst.DeclaredType, old, new)
		}
	}

	// Storage var types.
	if c.Storage != nil {
		for i := range c.Storage.Vars {
			replaceInType(c.Storage.Vars[i].Type, old, new)
		}
	}

	// Interface storage and interface-var types.
	for i := range c.Interfaces {
		iface := &c.Interfaces[i]
		if iface.Storage != nil {
			for j := range iface.Storage.Vars {
				replaceInType(iface.Storage.Vars[j].Type, old, new)
			}
		}
		for j := range iface.Predicates {
			for k := range iface.Predicates[j].Vars {
				replaceInType(iface.Predicates[j].Vars[k].Type, old, new)
			}
		}
	}

	// New-type aliases.
	for i := range c.NewTypes {
		replaceInType(c.NewTypes[i].Target, old, new)
	}

	if pred == nil {
		return
	}

	pred.EachVar(func(k ir.VarKey, _ *ir.Var) bool {
		if t, ok := pred.VarType(k); ok {
			replaceInType(t, old, new)
		}
		return true
	})
	pred.EachState(func(k ir.StateKey, s *ir.State) bool {
		replaceKey(&s.Expr, old, new)
		if t, ok := pred.StateType(k); ok {
			replaceInType(t, old, new)
		}
		return true
	})
	for i := range pred.Constraints {
		replaceKey(&pred.Constraints[i].Expr, old, new)
	}
	for i := range pred.Ifs {
		replaceInIf(&pred.Ifs[i], old, new)
	}
	for i := range pred.Matches {
		replaceInMatch(&pred.Matches[i], old, new)
	}
	for k, v := range pred.VarInit {
		if v == old {
			pred.VarInit[k] = new
		}
	}
	for i := range pred.InterfaceInstances {
		replaceKey(&pred.InterfaceInstances[i].Address, old, new)
	}
	for i := range pred.PredicateInstances {
		if pred.PredicateInstances[i].Address != nil {
			replaceKey(pred.PredicateInstances[i].Address, old, new)
		}
	}
}

// TypeMutator mutates a type in place (used by UpdateTypes).
type TypeMutator func(ir.Type) ir.Type

// UpdateTypes walks every live type in the contract and applies fn,
// storing the result back. skipNewTypes lets the new-type-alias
// expansion pass avoid recursing into the alias table it is itself
// rewriting (spec.md §4.2).
func UpdateTypes(c *ir.Contract, skipNewTypes bool, fn TypeMutator) {
	for _, k := range c.ExprKeys() {
		if t, ok := c.ExprType(k); ok {
			c.SetExprType(k, fn(t))
		}
	}
	for _, cst := range c.Consts {
		if cst.DeclaredType != nil {
			cst.DeclaredType = fn(cst.DeclaredType)
		}
	}
	if c.Storage != nil {
		for i := range c.Storage.Vars {
			c.Storage.Vars[i].Type = fn(c.Storage.Vars[i].Type)
		}
	}
	for i := range c.Interfaces {
		iface := &c.Interfaces[i]
		if iface.Storage != nil {
			for j := range iface.Storage.Vars {
				iface.Storage.Vars[j].Type = fn(iface.Storage.Vars[j].Type)
			}
		}
		for j := range iface.Predicates {
			for k := range iface.Predicates[j].Vars {
				iface.Predicates[j].Vars[k].Type = fn(iface.Predicates[j].Vars[k].Type)
			}
		}
	}
	if !skipNewTypes {
		for i := range c.NewTypes {
			c.NewTypes[i].Target = fn(c.NewTypes[i].Target)
		}
	}

	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		p.EachVar(func(k ir.VarKey, _ *ir.Var) bool {
			if t, ok := p.VarType(k); ok {
				p.SetVarType(k, fn(t))
			}
			return true
		})
		p.EachState(func(k ir.StateKey, _ *ir.State) bool {
			if t, ok := p.StateType(k); ok {
				p.SetStateType(k, fn(t))
			}
			return true
		})
		return true
	})
}
