// Package abi extracts the public interface of a lowered contract and
// derives the content addresses predicates and contracts are known by
// (SPEC_FULL.md §4.5, C5).
package abi

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/pintlang/pintc/internal/ir"
)

// Address is a 32-byte content address (spec.md §8: "a content address
// is a 32-byte value, formatted in hex for filesystem paths").
type Address [32]byte

// String renders an address as lowercase hex, for filesystem paths and
// `const ADDRESS: b256 = 0x<hex>;` synthesis.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// MarshalJSON renders an address as a JSON string of "0x" followed by
// the hex String returns, so ABI and bundle JSON carry hex, not a byte
// array.
func (a Address) MarshalJSON() ([]byte, error) { return []byte(`"0x` + a.String() + `"`), nil }

// ZeroSalt is the contract content-address salt: reserved, currently
// always zero (spec.md §8: "a future salt source is not defined and
// should not be guessed").
var ZeroSalt [32]byte

// PredicateAddress hashes a predicate's serialized bytecode bundle:
// its state-read programs, its constraint programs, and its solve
// directive, each length-prefixed so the hash cannot be confused by
// concatenation ambiguity across program boundaries (spec.md §8:
// "the hash of its serialized bytecode bundle (state-read programs +
// constraint programs + directive)"). The hashing shape follows the
// teacher's internal/sid.NewSID: a deterministic byte string fed to
// sha256, generalized here from a 16-hex-char truncation to the full
// digest the spec requires.
func PredicateAddress(stateRead [][]byte, constraints [][]byte, directive *ir.SolveDirective) Address {
	h := sha256.New()
	writeBlock(h, stateRead)
	writeBlock(h, constraints)
	writeDirective(h, directive)
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}

func writeBlock(h interface{ Write([]byte) (int, error) }, progs [][]byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(progs)))
	h.Write(lenBuf[:])
	for _, p := range progs {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(p)))
		h.Write(lenBuf[:])
		h.Write(p)
	}
}

func writeDirective(h interface{ Write([]byte) (int, error) }, d *ir.SolveDirective) {
	if d == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1, byte(d.Kind)})
}

// ContractAddress hashes the sorted list of predicate addresses plus
// the salt (spec.md §8: "derived deterministically from the sorted
// list of predicate addresses plus a salt"), so the contract CA never
// depends on the iteration order of the predicate table.
func ContractAddress(predicateCAs []Address, salt [32]byte) Address {
	sorted := append([]Address(nil), predicateCAs...)
	sort.Slice(sorted, func(i, j int) bool {
		return hex.EncodeToString(sorted[i][:]) < hex.EncodeToString(sorted[j][:])
	})

	h := sha256.New()
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(sorted)))
	h.Write(lenBuf[:])
	for _, ca := range sorted {
		h.Write(ca[:])
	}
	h.Write(salt[:])

	var out Address
	copy(out[:], h.Sum(nil))
	return out
}
