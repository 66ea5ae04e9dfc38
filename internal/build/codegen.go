package build

import (
	"github.com/pintlang/pintc/internal/abi"
	"github.com/pintlang/pintc/internal/asm"
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/ir"
)

// compileAllPredicates runs the assembly generator and content
// addressing over every predicate in a flattened contract, in
// declaration order (spec.md §4.6 step 4: "run the assembly generator
// to produce a list of {name, predicate_bytecode}; compute each
// predicate's content address").
func compileAllPredicates(c *ir.Contract, h *diag.Handler) ([]abi.CompiledPredicate, []abi.PredicateABI, []abi.Address, error) {
	var compiled []abi.CompiledPredicate
	var predicateABIs []abi.PredicateABI
	var cas []abi.Address
	var firstErr error

	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		if predicateOnlyRemovedMacroCalls(c, p) {
			// spec.md §9: a predicate whose every constraint traces back
			// to a removed macro call produced no output because the
			// pass that removed the macro call already reported it;
			// compiling it further would only cascade new errors.
			return true
		}

		cp, ok := asm.CompilePredicate(c, p, h)
		if !ok {
			firstErr = h.Errors()[len(h.Errors())-1]
			return false
		}
		ca := abi.PredicateAddress(cp.StateRead, cp.Constraints, p.Directive)
		directive := "satisfy"
		if p.Directive != nil {
			directive = p.Directive.Kind.String()
		}
		compiled = append(compiled, abi.CompiledPredicate{
			Name:        p.Name,
			StateRead:   cp.StateRead,
			Constraints: cp.Constraints,
			Directive:   directive,
			Address:     ca,
		})
		predicateABIs = append(predicateABIs, abi.ExtractPredicate(p, ca))
		cas = append(cas, ca)
		return true
	})

	if firstErr != nil {
		return nil, nil, nil, firstErr
	}
	return compiled, predicateABIs, cas, nil
}

// predicateOnlyRemovedMacroCalls reports whether p has at least one
// constraint or state and every one of them is a removed-macro-call
// marker, the ambiguous case spec.md §9 calls out: "the implementer
// should treat such predicates as 'produced no output, reported errors
// already' and skip silently."
func predicateOnlyRemovedMacroCalls(c *ir.Contract, p *ir.Predicate) bool {
	total, removed := 0, 0
	for _, cd := range p.Constraints {
		total++
		if c.RemovedMacroCalls[cd.Expr] {
			removed++
		}
	}
	p.EachState(func(_ ir.StateKey, s *ir.State) bool {
		total++
		if c.RemovedMacroCalls[s.Expr] {
			removed++
		}
		return true
	})
	return total > 0 && total == removed
}
