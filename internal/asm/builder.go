package asm

import (
	"bytes"
	"encoding/binary"
)

// Builder accumulates one opcode stream. Every opcode is a single tag
// byte; the stream's own Push opcode additionally carries an 8-byte
// big-endian immediate word. Every other opcode consumes whatever
// operands it needs from the words previously left on the operand
// stack by earlier Push opcodes (spec.md §8's worked example:
// `Push(0), DecisionVar, Push(1), DecisionVar, Eq`). pushOp records
// which tag byte means Push for the union this builder is assembling,
// since state-read and constraint programs use differently-numbered
// opcode sets.
type Builder struct {
	buf    bytes.Buffer
	pushOp byte
}

// NewBuilder returns an empty opcode-stream builder that pushes
// immediates using pushOp (the calling union's own Push tag).
func NewBuilder(pushOp byte) *Builder { return &Builder{pushOp: pushOp} }

// Len reports how many bytes have been emitted so far; jump targets
// are expressed in this same unit by the compiler that computes them.
func (b *Builder) Len() int { return b.buf.Len() }

// Bytes returns the assembled opcode stream.
func (b *Builder) Bytes() []byte { return b.buf.Bytes() }

func (b *Builder) emitByte(op byte) { b.buf.WriteByte(op) }

func (b *Builder) emitWord(v uint64) {
	var w [8]byte
	binary.BigEndian.PutUint64(w[:], v)
	b.buf.Write(w[:])
}

// push emits this builder's Push opcode with an immediate word.
func (b *Builder) push(v uint64) {
	b.emitByte(b.pushOp)
	b.emitWord(v)
}

// Simple emits a bare opcode with no operand of its own; any operands
// it consumes must already be on the stack.
func (b *Builder) Simple(op byte) { b.emitByte(op) }

// WithIndex pushes a single operand word, then emits op.
func (b *Builder) WithIndex(op byte, idx uint64) {
	b.push(idx)
	b.emitByte(op)
}

// WithTwoIndices pushes two operand words, then emits op.
func (b *Builder) WithTwoIndices(op byte, a, c uint64) {
	b.push(a)
	b.push(c)
	b.emitByte(op)
}

// WithWords pushes each word in words, then emits op.
func (b *Builder) WithWords(op byte, words ...uint64) {
	for _, w := range words {
		b.push(w)
	}
	b.emitByte(op)
}

// Push exposes a bare immediate push, used where the caller needs a
// value on the stack without an immediately following consumer (e.g.
// short-circuit jump distances).
func (b *Builder) Push(op byte, v uint64) {
	b.emitByte(op)
	b.emitWord(v)
}

// Append splices another builder's finished stream in, used when a
// sub-expression is compiled independently (e.g. select/short-circuit
// branches) and then stitched into the parent stream.
func (b *Builder) Append(other *Builder) { b.buf.Write(other.Bytes()) }

// AppendBytes splices a raw byte sequence in.
func (b *Builder) AppendBytes(p []byte) { b.buf.Write(p) }
