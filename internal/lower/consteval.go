// Package lower implements the fixed-order lowering pipeline of
// SPEC_FULL.md §4.3 (C3): array-size resolution, solve-directive
// canonicalization, array/tuple comparison expansion, and array/tuple
// scalarization.
package lower

import (
	"errors"
	"fmt"

	"github.com/pintlang/pintc/internal/ir"
)

// ErrNotConst is returned by Eval when the expression references
// anything that cannot be folded at compile time (a decision variable,
// a state read, storage, etc). Callers translate it into the
// context-specific diag.Report their caller needs (NonConstArrayLength,
// NonConstArrayIndex, ...).
var ErrNotConst = errors.New("not a compile-time constant")

// ConstKind tags the shape of a folded constant value.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstBool
	ConstB256
)

// ConstValue is the result of folding an expression to a compile-time
// constant (spec.md §4.3 "Constant evaluation").
type ConstValue struct {
	Kind  ConstKind
	Int   int64
	Bool  bool
	Words [4]uint64
}

func (v ConstValue) String() string {
	switch v.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", v.Int)
	case ConstBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return fmt.Sprintf("0x%x", v.Words)
	}
}

// AsInt returns the value as an int64, failing for non-integer kinds.
func (v ConstValue) AsInt() (int64, bool) {
	if v.Kind != ConstInt {
		return 0, false
	}
	return v.Int, true
}

// Eval folds expr against an empty environment: pure arithmetic,
// comparisons, boolean connectives, and immediate literals. Any
// reference to a decision variable, state, or storage fails with
// ErrNotConst (spec.md §4.3).
func Eval(c *ir.Contract, key ir.ExprKey) (ConstValue, error) {
	e, ok := c.Expr(key)
	if !ok {
		return ConstValue{}, fmt.Errorf("%w: dangling expression key", ErrNotConst)
	}
	switch v := e.(type) {
	case *ir.LitInt:
		return ConstValue{Kind: ConstInt, Int: v.Value}, nil
	case *ir.LitBool:
		return ConstValue{Kind: ConstBool, Bool: v.Value}, nil
	case *ir.LitB256:
		return ConstValue{Kind: ConstB256, Words: v.Words}, nil
	case *ir.Ident:
		// A reference to a contract-level const folds through; a
		// reference to a decision variable does not.
		if cst, ok := c.Consts[v.Name]; ok {
			return Eval(c, cst.Expr)
		}
		return ConstValue{}, fmt.Errorf("%w: %q is not a constant", ErrNotConst, v.Name)
	case *ir.UnaryOp:
		operand, err := Eval(c, v.Operand)
		if err != nil {
			return ConstValue{}, err
		}
		switch v.Op {
		case "!":
			if operand.Kind != ConstBool {
				return ConstValue{}, fmt.Errorf("%w: ! applied to non-bool constant", ErrNotConst)
			}
			return ConstValue{Kind: ConstBool, Bool: !operand.Bool}, nil
		case "-":
			if operand.Kind != ConstInt {
				return ConstValue{}, fmt.Errorf("%w: unary - applied to non-int constant", ErrNotConst)
			}
			return ConstValue{Kind: ConstInt, Int: -operand.Int}, nil
		}
		return ConstValue{}, fmt.Errorf("%w: unknown unary operator %q", ErrNotConst, v.Op)
	case *ir.BinaryOp:
		return evalBinary(c, v)
	default:
		return ConstValue{}, fmt.Errorf("%w: %T is not a foldable form", ErrNotConst, e)
	}
}

func evalBinary(c *ir.Contract, b *ir.BinaryOp) (ConstValue, error) {
	lhs, err := Eval(c, b.LHS)
	if err != nil {
		return ConstValue{}, err
	}
	rhs, err := Eval(c, b.RHS)
	if err != nil {
		return ConstValue{}, err
	}

	switch b.Op {
	case "&&", "||":
		if lhs.Kind != ConstBool || rhs.Kind != ConstBool {
			return ConstValue{}, fmt.Errorf("%w: logical operator on non-bool constants", ErrNotConst)
		}
		if b.Op == "&&" {
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool && rhs.Bool}, nil
		}
		return ConstValue{Kind: ConstBool, Bool: lhs.Bool || rhs.Bool}, nil
	case "==", "!=":
		eq := lhs == rhs
		if b.Op == "!=" {
			eq = !eq
		}
		return ConstValue{Kind: ConstBool, Bool: eq}, nil
	}

	if lhs.Kind != ConstInt || rhs.Kind != ConstInt {
		return ConstValue{}, fmt.Errorf("%w: arithmetic operator on non-int constants", ErrNotConst)
	}
	switch b.Op {
	case "+":
		return ConstValue{Kind: ConstInt, Int: lhs.Int + rhs.Int}, nil
	case "-":
		return ConstValue{Kind: ConstInt, Int: lhs.Int - rhs.Int}, nil
	case "*":
		return ConstValue{Kind: ConstInt, Int: lhs.Int * rhs.Int}, nil
	case "/":
		if rhs.Int == 0 {
			return ConstValue{}, fmt.Errorf("%w: division by zero", ErrNotConst)
		}
		return ConstValue{Kind: ConstInt, Int: lhs.Int / rhs.Int}, nil
	case "%":
		if rhs.Int == 0 {
			return ConstValue{}, fmt.Errorf("%w: modulo by zero", ErrNotConst)
		}
		return ConstValue{Kind: ConstInt, Int: lhs.Int % rhs.Int}, nil
	case "<":
		return ConstValue{Kind: ConstBool, Bool: lhs.Int < rhs.Int}, nil
	case "<=":
		return ConstValue{Kind: ConstBool, Bool: lhs.Int <= rhs.Int}, nil
	case ">":
		return ConstValue{Kind: ConstBool, Bool: lhs.Int > rhs.Int}, nil
	case ">=":
		return ConstValue{Kind: ConstBool, Bool: lhs.Int >= rhs.Int}, nil
	}
	return ConstValue{}, fmt.Errorf("%w: unknown binary operator %q", ErrNotConst, b.Op)
}
