package asm

import (
	"fmt"

	"github.com/pintlang/pintc/internal/ir"
)

// PointerKind is one of the four pointer shapes path compilation can
// produce (spec.md §4.4.1).
type PointerKind int

const (
	KindValue PointerKind = iota
	KindDecisionVar
	KindTransient
	KindState
)

// compileValue compiles expr so that, after execution, its value (one
// or more words) sits on the operand stack (spec.md §4.4.1: "a
// post-pass for expressions that are ultimately consumed as values
// emits the appropriate read opcode driven by the pointer kind and the
// expression's type size").
func compileValue(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, key ir.ExprKey) error {
	e, ok := c.Expr(key)
	if !ok {
		return fmt.Errorf("dangling expression key")
	}
	t, _ := c.ExprType(key)
	width := ir.Size(t)

	switch v := e.(type) {
	case *ir.LitInt:
		b.Push(byte(COpPush), uint64(v.Value))
		return nil
	case *ir.LitBool:
		w := uint64(0)
		if v.Value {
			w = 1
		}
		b.Push(byte(COpPush), w)
		return nil
	case *ir.LitB256:
		for _, word := range v.Words {
			b.Push(byte(COpPush), word)
		}
		return nil
	case *ir.LitArray:
		for _, el := range v.Elements {
			if err := compileValue(c, p, l, b, el); err != nil {
				return err
			}
		}
		return nil
	case *ir.LitTuple:
		for _, el := range v.Elements {
			if err := compileValue(c, p, l, b, el); err != nil {
				return err
			}
		}
		return nil
	case *ir.Ident:
		return compilePathValue(c, p, l, b, v, width, false)
	case *ir.NextState:
		id, ok := c.Expr(v.Inner)
		if !ok {
			return fmt.Errorf("next-state marker wraps a dangling expression")
		}
		ident, ok := id.(*ir.Ident)
		if !ok {
			return fmt.Errorf("next-state marker must wrap an identifier path")
		}
		return compilePathValue(c, p, l, b, ident, width, true)
	case *ir.UnaryOp:
		return compileUnary(c, p, l, b, v)
	case *ir.BinaryOp:
		return compileBinary(c, p, l, b, v, width)
	case *ir.Select:
		return compileSelect(c, p, l, b, v, width)
	case *ir.IntrinsicCall:
		return compileIntrinsic(c, p, l, b, v)
	case *ir.Cast:
		// Casts are erased at codegen time; the underlying value's
		// encoding is unchanged (spec.md names no cast opcode).
		return compileValue(c, p, l, b, v.Value)
	case *ir.ArrayElementAccess, *ir.TupleFieldAccess:
		// Invariant: post-scalarization these only target storage
		// expressions (spec.md §4.3 "Invariants at pass exit"), which
		// are read through a named State pointer, never compiled here.
		return fmt.Errorf("storage-rooted aggregate access must be reached through a named State, not read directly as a value")
	default:
		return fmt.Errorf("%T has no value-compilation rule", e)
	}
}

// compilePathValue resolves name to a private var, public var, or
// state, and emits the matching pointer + read opcode pair.
func compilePathValue(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, id *ir.Ident, width int, nextState bool) error {
	if id.Var != nil {
		if slot, ok := l.PrivateSlot(*id.Var); ok {
			return emitVarRead(b, byte(COpDecisionVar), byte(COpDecisionVarRange), slot, width)
		}
		if slot, ok := l.PublicSlot(*id.Var); ok {
			return emitOwnTransientRead(b, slot, width)
		}
	}

	var stateKey ir.StateKey
	found := false
	p.EachState(func(k ir.StateKey, s *ir.State) bool {
		if s.Name == id.Name {
			stateKey, found = k, true
			return false
		}
		return true
	})
	if found {
		base, _ := l.StateBase(stateKey)
		return emitStateRead(b, base, width, nextState)
	}

	if res, ok := resolvePathway(c, p, l, id.Name); ok {
		keyLen := 1
		if res.width > 1 {
			keyLen = 2
		}
		b.WithWords(byte(COpTransient), uint64(res.pathwaySlot), uint64(res.remoteSlot), uint64(keyLen))
		return nil
	}

	return fmt.Errorf("identifier %q resolves to neither a private var, public var, nor state", id.Name)
}

func emitVarRead(b *Builder, single, rangeOp byte, slot, width int) error {
	if width <= 1 {
		b.WithIndex(single, uint64(slot))
		return nil
	}
	b.WithTwoIndices(rangeOp, uint64(slot), uint64(width))
	return nil
}

// emitOwnTransientRead reads a public var declared on this predicate
// itself, addressed through its own (implicit) pathway.
func emitOwnTransientRead(b *Builder, slot, width int) error {
	keyLen := 1
	if width > 1 {
		keyLen = 2
	}
	b.WithTwoIndices(byte(COpTransient), uint64(slot), uint64(keyLen))
	return nil
}

func emitStateRead(b *Builder, base, width int, nextState bool) error {
	selector := uint64(0)
	if nextState {
		selector = 1
	}
	if width <= 1 {
		b.WithTwoIndices(byte(COpState), uint64(base), selector)
		return nil
	}
	b.WithWords(byte(COpStateRange), uint64(base), uint64(width), selector)
	return nil
}

func compileUnary(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, u *ir.UnaryOp) error {
	switch u.Op {
	case "!":
		if err := compileValue(c, p, l, b, u.Operand); err != nil {
			return err
		}
		b.Simple(byte(COpNot))
		return nil
	case "-":
		b.Push(byte(COpPush), 0)
		if err := compileValue(c, p, l, b, u.Operand); err != nil {
			return err
		}
		b.Simple(byte(COpSub))
		return nil
	default:
		return fmt.Errorf("unknown unary operator %q", u.Op)
	}
}

func compileBinary(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, bin *ir.BinaryOp, width int) error {
	switch bin.Op {
	case "&&":
		return compileShortCircuit(c, p, l, b, bin, true)
	case "||":
		return compileShortCircuit(c, p, l, b, bin, false)
	}

	if err := compileValue(c, p, l, b, bin.LHS); err != nil {
		return err
	}
	if err := compileValue(c, p, l, b, bin.RHS); err != nil {
		return err
	}

	lt, _ := c.ExprType(bin.LHS)
	opWidth := ir.Size(lt)

	switch bin.Op {
	case "==":
		return emitEq(b, opWidth)
	case "!=":
		if err := emitEq(b, opWidth); err != nil {
			return err
		}
		b.Simple(byte(COpNot))
		return nil
	case "+":
		b.Simple(byte(COpAdd))
	case "-":
		b.Simple(byte(COpSub))
	case "*":
		b.Simple(byte(COpMul))
	case "/":
		b.Simple(byte(COpDiv))
	case "%":
		b.Simple(byte(COpMod))
	case "<":
		b.Simple(byte(COpLt))
	case "<=":
		b.Simple(byte(COpLte))
	case ">":
		b.Simple(byte(COpGt))
	case ">=":
		b.Simple(byte(COpGte))
	default:
		return fmt.Errorf("operator %q has no direct opcode mapping", bin.Op)
	}
	return nil
}

func emitEq(b *Builder, width int) error {
	if width <= 1 {
		b.Simple(byte(COpEq))
		return nil
	}
	b.Push(byte(COpPush), uint64(width))
	b.Simple(byte(COpEqRange))
	return nil
}

// compileShortCircuit implements spec.md §4.4.1's exact sequences for
// `&&` (and=true) and `||` (and=false).
func compileShortCircuit(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, bin *ir.BinaryOp, and bool) error {
	rhs := NewBuilder(byte(COpPush))
	if err := compileValue(c, p, l, rhs, bin.RHS); err != nil {
		return err
	}
	lhs := NewBuilder(byte(COpPush))
	if err := compileValue(c, p, l, lhs, bin.LHS); err != nil {
		return err
	}

	placeholder := uint64(0)
	if and {
		b.Push(byte(COpPush), placeholder)
	} else {
		b.Push(byte(COpPush), 1)
	}
	// Jump distance skips the rhs opcodes and its own Pop.
	b.Push(byte(COpPush), uint64(opcodeCount(rhs)+2))
	b.Append(lhs)
	if and {
		b.Simple(byte(COpNot))
	}
	b.Simple(byte(COpJumpForwardIf))
	b.Simple(byte(COpPop))
	b.Append(rhs)
	return nil
}

// opcodeCount approximates the VM's notion of "instruction count" by
// the number of bytes emitted; the VM's JumpForwardIf target uses the
// same unit the assembler emits in, so this stays internally
// consistent even though it is not literally an instruction count.
func opcodeCount(b *Builder) int { return b.Len() }

func compileSelect(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, s *ir.Select, width int) error {
	thenB := NewBuilder(byte(COpPush))
	if err := compileValue(c, p, l, thenB, s.Then); err != nil {
		return err
	}
	elseB := NewBuilder(byte(COpPush))
	if err := compileValue(c, p, l, elseB, s.Else); err != nil {
		return err
	}
	condB := NewBuilder(byte(COpPush))
	if err := compileValue(c, p, l, condB, s.Cond); err != nil {
		return err
	}

	b.Push(byte(COpPush), uint64(opcodeCount(elseB)+3))
	b.Append(condB)
	b.Simple(byte(COpJumpForwardIf))
	b.Append(elseB)
	b.Push(byte(COpPush), 1)
	b.Simple(byte(COpJumpForwardIf))
	b.Append(thenB)
	return nil
}
