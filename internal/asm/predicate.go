package asm

import (
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
)

// CompiledPredicate is one predicate's full bytecode bundle: the list
// of state-read programs (spec.md §4.4.3) and one constraint program
// per `constraint` declaration (spec.md §4.4.1), in declaration order.
type CompiledPredicate struct {
	StateRead   [][]byte
	Constraints [][]byte
}

// CompilePredicate lowers p's constraints and state reads to opcode
// streams. p must already have been through the full lowering pipeline
// (if/match blocks flattened into plain constraints, arrays and tuples
// scalarized, solve directive canonicalized) so every remaining
// expression is directly codegen-able and p.Constraints is the
// complete set of constraints to emit.
func CompilePredicate(c *ir.Contract, p *ir.Predicate, h *diag.Handler) (*CompiledPredicate, bool) {
	ok := true
	l := BuildLayout(c, p)

	if len(p.Ifs) > 0 || len(p.Matches) > 0 {
		h.Emit(diag.Internal("predicate reached codegen with unflattened if/match blocks", extern.Span{}))
		return nil, false
	}

	stateRead, err := BuildStateReadPrograms(c, p, l)
	if err != nil {
		h.Emit(diag.AsmGen(err.Error(), extern.Span{}))
		ok = false
	}

	var constraints [][]byte
	for _, decl := range p.Constraints {
		b := NewBuilder(byte(COpPush))
		if err := compileValue(c, p, l, b, decl.Expr); err != nil {
			h.Emit(diag.AsmGen(err.Error(), decl.Span))
			ok = false
			continue
		}
		constraints = append(constraints, b.Bytes())
	}

	if !ok {
		return nil, false
	}
	return &CompiledPredicate{StateRead: stateRead, Constraints: constraints}, true
}
