// Package build is the multi-package build driver (SPEC_FULL.md §4.6,
// C6): it walks a package graph in topological order, drives each
// package through parsing, type-checking, lowering and codegen, and
// synthesizes the dependency libraries downstream packages reference
// by content address.
package build

// Kind is a package's declared role (spec.md §6: "a kind
// (Library | Contract)").
type Kind int

const (
	Library Kind = iota
	Contract
)

func (k Kind) String() string {
	switch k {
	case Library:
		return "library"
	case Contract:
		return "contract"
	default:
		return "?kind"
	}
}

// Manifest is a package's declared identity (spec.md §6: "Every
// package provides: a name, a kind, and an entry-point file path
// relative to the package root").
type Manifest struct {
	Name       string
	Kind       Kind
	EntryPoint string
}
