// Package diag provides the compiler's error taxonomy and the
// process-wide scoped error accumulator described in SPEC_FULL.md §7.
package diag

// Error code constants, grouped by phase. Mirrors the teacher's
// XXX### registry pattern (internal/errors/codes.go) remapped onto
// this compiler's own phases.
const (
	// Symbol table (C1)
	SYM001 = "SYM001" // name clash: symbol already declared

	// Lowering passes (C3)
	SLV001 = "SLV001" // missing solve directive
	SLV002 = "SLV002" // more than one solve directive

	ARR001 = "ARR001" // array length not a compile-time constant
	ARR002 = "ARR002" // array length constant is invalid (<= 0)
	ARR003 = "ARR003" // array index not a compile-time constant
	ARR004 = "ARR004" // array index constant is invalid
	ARR005 = "ARR005" // array index out of bounds

	CMP001 = "CMP001" // mismatched array comparison sizes

	// Assembly generator (C4)
	ASM001 = "ASM001" // internal codegen failure (catch-all, carries msg+span)

	// Flatten / lowering catch-all (C3)
	FLT001 = "FLT001"

	// ABI generation (C5)
	ABI001 = "ABI001"

	// Build driver (C6)
	LIB001 = "LIB001" // stateful library package
	LIB002 = "LIB002" // filesystem failure synthesizing dependency library
	LIB003 = "LIB003" // dependency cycle in the package graph

	// Internal invariant violations (should not be reachable)
	INT001 = "INT001"

	// External passthrough
	PAR001 = "PAR001" // parse error surfaced verbatim
	CHK001 = "CHK001" // type-check error surfaced verbatim
)

// Info describes one error code for tooling and tests.
type Info struct {
	Code        string
	Phase       string
	Description string
}

// Registry maps every code above to its descriptive info.
var Registry = map[string]Info{
	SYM001: {SYM001, "symtab", "Name already declared in this scope"},

	SLV001: {SLV001, "canonicalize", "No solve directive present"},
	SLV002: {SLV002, "canonicalize", "More than one solve directive present"},

	ARR001: {ARR001, "fix-array-sizes", "Array length is not a compile-time constant"},
	ARR002: {ARR002, "fix-array-sizes", "Array length constant is not a positive integer"},
	ARR003: {ARR003, "array-scalarize", "Array index is not a compile-time constant"},
	ARR004: {ARR004, "array-scalarize", "Array index constant is invalid"},
	ARR005: {ARR005, "array-scalarize", "Array index is out of bounds"},

	CMP001: {CMP001, "array-compare-lowering", "Array comparison operands have mismatched sizes"},

	ASM001: {ASM001, "asm-gen", "Assembly generation failed"},
	FLT001: {FLT001, "flatten", "Lowering pass failed"},
	ABI001: {ABI001, "abi-gen", "ABI generation failed"},

	LIB001: {LIB001, "build", "Library package declares state variables"},
	LIB002: {LIB002, "build", "Failed to write synthesized dependency library"},
	LIB003: {LIB003, "build", "Package graph contains a dependency cycle"},

	INT001: {INT001, "internal", "Internal invariant violation"},

	PAR001: {PAR001, "parse", "Parse error"},
	CHK001: {CHK001, "typecheck", "Type-check error"},
}
