package asm

import (
	"fmt"

	"github.com/pintlang/pintc/internal/ir"
)

// compileIntrinsic dispatches on the intrinsic's trailing-name suffix
// (spec.md §4.4.1 "Intrinsics").
func compileIntrinsic(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, call *ir.IntrinsicCall) error {
	switch {
	case hasSuffix(call.Name, "__mut_keys_len"):
		b.Simple(byte(COpMutKeysLen))
		return nil
	case hasSuffix(call.Name, "__mut_keys_contains"):
		if err := compileArgs(c, p, l, b, call.Args); err != nil {
			return err
		}
		b.Simple(byte(COpMutKeysContains))
		return nil
	case hasSuffix(call.Name, "__this_address"):
		b.Simple(byte(COpThisAddress))
		return nil
	case hasSuffix(call.Name, "__this_contract_address"):
		b.Simple(byte(COpThisContractAddress))
		return nil
	case hasSuffix(call.Name, "__this_pathway"):
		b.Simple(byte(COpThisPathway))
		return nil
	case hasSuffix(call.Name, "__sha256"):
		return compileCryptoOp(c, p, l, b, call, COpSHA256)
	case hasSuffix(call.Name, "__verify_ed25519"):
		return compileCryptoOp(c, p, l, b, call, COpVerifyEd25519)
	case hasSuffix(call.Name, "__recover_secp256k1"):
		return compileCryptoOp(c, p, l, b, call, COpRecoverSecp256k1)
	case hasSuffix(call.Name, "__state_len"):
		return compileStateLen(c, p, l, b, call)
	default:
		return fmt.Errorf("unrecognized intrinsic %q", call.Name)
	}
}

func compileArgs(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, args []ir.ExprKey) error {
	for _, a := range args {
		if err := compileValue(c, p, l, b, a); err != nil {
			return err
		}
	}
	return nil
}

// compileCryptoOp compiles each argument as a value, pushes its word
// width as an immediate, then emits the crypto opcode (spec.md §4.4.1:
// "arguments are compiled as values, their word widths pushed as
// immediates, then the op is emitted").
func compileCryptoOp(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, call *ir.IntrinsicCall, op ConstraintOp) error {
	for _, a := range call.Args {
		if err := compileValue(c, p, l, b, a); err != nil {
			return err
		}
		t, _ := c.ExprType(a)
		b.Push(byte(COpPush), uint64(ir.Size(t)))
	}
	b.Simple(byte(op))
	return nil
}

// compileStateLen compiles the path-to-state argument, which ends in a
// State/StateRange op, and replaces it with StateLen (spec.md §4.4.1).
// Rather than patching a generic byte stream after the fact, the state
// lookup is re-derived directly so StateLen is emitted in one pass.
func compileStateLen(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, call *ir.IntrinsicCall) error {
	if len(call.Args) != 1 {
		return fmt.Errorf("__state_len takes exactly one argument")
	}
	e, ok := c.Expr(call.Args[0])
	if !ok {
		return fmt.Errorf("__state_len argument is a dangling expression")
	}
	if ns, ok := e.(*ir.NextState); ok {
		e, ok = c.Expr(ns.Inner)
		if !ok {
			return fmt.Errorf("__state_len argument's next-state marker wraps a dangling expression")
		}
	}
	id, ok := e.(*ir.Ident)
	if !ok {
		return fmt.Errorf("__state_len argument must be a state path, got %T", e)
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
	if !found {
		return fmt.Errorf("__state_len argument %q does not resolve to a state variable", id.Name)
	}
	base, _ := l.StateBase(stateKey)
	b.WithIndex(byte(COpStateLen), uint64(base))
	return nil
}
