// Package asm is the assembly generator (SPEC_FULL.md §4.4, C4): it
// compiles a lowered predicate into the two byte-wise opcode streams
// the external VM consumes, a state-read program and one constraint
// program per `constraint` declaration.
package asm

// StateReadOp is one opcode of the state-read program's closed tagged
// union (spec.md §4.4.3).
type StateReadOp byte

const (
	OpAllocSlots StateReadOp = iota
	OpKeyRange
	OpKeyRangeExtern
	OpHalt
	// Push and Add share their names with the constraint-program union
	// but use this union's own tag numbers; the state-read union has no
	// other opcodes.
	OpPush
	OpAdd
)

func (o StateReadOp) String() string {
	switch o {
	case OpAllocSlots:
		return "AllocSlots"
	case OpKeyRange:
		return "KeyRange"
	case OpKeyRangeExtern:
		return "KeyRangeExtern"
	case OpHalt:
		return "Halt"
	case OpPush:
		return "Push"
	case OpAdd:
		return "Add"
	default:
		return "?state-read-op"
	}
}

// ConstraintOp is one opcode of the constraint program's closed tagged
// union (spec.md §4.4.1).
type ConstraintOp byte

const (
	COpPush ConstraintOp = iota
	COpPop
	COpNot
	COpAdd
	COpSub
	COpMul
	COpDiv
	COpMod
	COpEq
	COpEqRange
	COpLt
	COpLte
	COpGt
	COpGte
	COpJumpForwardIf
	COpDecisionVar
	COpDecisionVarRange
	COpTransient
	COpState
	COpStateRange
	COpStateLen
	COpSelect
	COpSelectRange
	COpMutKeysLen
	COpMutKeysContains
	COpThisAddress
	COpThisContractAddress
	COpThisPathway
	COpSHA256
	COpVerifyEd25519
	COpRecoverSecp256k1
)

func (o ConstraintOp) String() string {
	switch o {
	case COpPush:
		return "Push"
	case COpPop:
		return "Pop"
	case COpNot:
		return "Not"
	case COpAdd:
		return "Add"
	case COpSub:
		return "Sub"
	case COpMul:
		return "Mul"
	case COpDiv:
		return "Div"
	case COpMod:
		return "Mod"
	case COpEq:
		return "Eq"
	case COpEqRange:
		return "EqRange"
	case COpLt:
		return "Lt"
	case COpLte:
		return "Lte"
	case COpGt:
		return "Gt"
	case COpGte:
		return "Gte"
	case COpJumpForwardIf:
		return "JumpForwardIf"
	case COpDecisionVar:
		return "DecisionVar"
	case COpDecisionVarRange:
		return "DecisionVarRange"
	case COpTransient:
		return "Transient"
	case COpState:
		return "State"
	case COpStateRange:
		return "StateRange"
	case COpStateLen:
		return "StateLen"
	case COpSelect:
		return "Select"
	case COpSelectRange:
		return "SelectRange"
	case COpMutKeysLen:
		return "MutKeysLen"
	case COpMutKeysContains:
		return "MutKeysContains"
	case COpThisAddress:
		return "ThisAddress"
	case COpThisContractAddress:
		return "ThisContractAddress"
	case COpThisPathway:
		return "ThisPathway"
	case COpSHA256:
		return "Sha256"
	case COpVerifyEd25519:
		return "VerifyEd25519"
	case COpRecoverSecp256k1:
		return "RecoverSecp256k1"
	default:
		return "?constraint-op"
	}
}
