package lower

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/ir"
)

// Contract runs the fixed-order lowering pipeline over the whole
// contract (spec.md §4.3): fix array sizes, canonicalize every
// predicate's solve directive, flatten its if/match constraint blocks
// into plain constraints, expand array and tuple comparisons, then
// scalarize arrays and tuples. Each predicate's canonicalization and
// control-flow flattening run inside their own handler scope so one
// predicate's MissingSolveDirective doesn't stop the others from
// lowering (spec.md §4.1 "scope"). Flattening runs before comparison
// lowering and scalarization so constraints pulled out of an if/match
// block still go through both (they may themselves compare or contain
// arrays/tuples).
func Contract(c *ir.Contract, h *diag.Handler) {
	FixArraySizes(c, h)
	if h.HasErrors() {
		return
	}

	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		_ = h.Scope(func() error {
			CanonicalizeSolveDirective(c, p, h)
			FlattenControlFlow(c, p, h)
			return nil
		})
		return true
	})

	ArrayCompareLowering(c, h)
	TupleCompareLowering(c, h)
	ArrayScalarize(c, h)
	TupleScalarize(c, h)
}
