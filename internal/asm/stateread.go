package asm

import (
	"github.com/pintlang/pintc/internal/ir"
)

// BuildStateReadPrograms assembles one state-read opcode stream per
// state variable, in declaration order (spec.md §4.4.3: "the predicate
// carries a list of these, one per state variable"). Each program is
// self-contained: it builds its own storage key, allocates its own
// scratch slots, issues one KeyRange/KeyRangeExtern, and ends in Halt.
func BuildStateReadPrograms(c *ir.Contract, p *ir.Predicate, l *Layout) ([][]byte, error) {
	var programs [][]byte
	var outerErr error
	p.EachState(func(k ir.StateKey, s *ir.State) bool {
		prog, err := buildOneStateReadProgram(c, p, l, k, s)
		if err != nil {
			outerErr = err
			return false
		}
		programs = append(programs, prog)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return programs, nil
}

func buildOneStateReadProgram(c *ir.Contract, p *ir.Predicate, l *Layout, k ir.StateKey, s *ir.State) ([]byte, error) {
	b := NewBuilder(byte(OpPush))

	// 1. Build the storage key, leaving it on the stack.
	key, err := compileStorageKey(c, p, l, b, s.Expr)
	if err != nil {
		return nil, err
	}

	// 2-3. Push the number of storage slots the state type occupies,
	// then allocate them in the state-read scratch area.
	stateType, _ := p.StateType(k)
	slots := ir.StorageSlots(stateType)
	b.WithIndex(byte(OpAllocSlots), uint64(slots))

	// 4. Push key length, slot-count, base slot index, then read.
	base, _ := l.StateBase(k)
	readOp := OpKeyRange
	if key.Extern {
		readOp = OpKeyRangeExtern
	}
	b.WithWords(byte(readOp), uint64(key.Length), uint64(slots), uint64(base))

	// 5. Halt terminates this program.
	b.Simple(byte(OpHalt))

	return b.Bytes(), nil
}
