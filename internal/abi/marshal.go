package abi

import "github.com/pintlang/pintc/internal/schema"

// MarshalABI renders a ContractABI as deterministic, sorted-key JSON,
// reusing the teacher's key-sorting marshaler so the same contract
// always serializes to byte-identical ABI JSON (spec.md §8 property
// P3, extended from content addresses to the ABI artifact itself).
func MarshalABI(a ContractABI) ([]byte, error) {
	return schema.MarshalDeterministic(a)
}

// Bundle is the artifact written to `<name>.json`: the compiled
// predicate bytecode plus the salt used for the contract's content
// address (spec.md §6: "pretty-printed JSON of Contract { predicates:
// [...], salt: 32 bytes }").
type Bundle struct {
	Schema     string              `json:"schema"`
	Predicates []CompiledPredicate `json:"predicates"`
	Salt       [32]byte            `json:"salt"`
	Address    Address             `json:"address"`
}

// CompiledPredicate is one predicate's entry in a Bundle.
type CompiledPredicate struct {
	Name        string   `json:"name"`
	StateRead   [][]byte `json:"state_read"`
	Constraints [][]byte `json:"constraints"`
	Directive   string   `json:"directive"`
	Address     Address  `json:"address"`
}

// MarshalBundle renders a Bundle as deterministic, sorted-key JSON.
func MarshalBundle(b Bundle) ([]byte, error) {
	return schema.MarshalDeterministic(b)
}
