package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pintlang/pintc/internal/extern"
)

// Report is the canonical structured error produced by every compiler
// phase. It mirrors the teacher's errors.Report (schema/code/phase/
// message/span) generalized with the PrevSpan and Data fields the
// spec's NameClash and cycle-detecting errors need.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *extern.Span   `json:"span,omitempty"`
	PrevSpan *extern.Span  `json:"prev_span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

const schemaV1 = "pintc.error/v1"

func (r *Report) Error() string {
	if r.Span != nil {
		return fmt.Sprintf("%s: %s (at %s)", r.Code, r.Message, r.Span)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// ToJSON renders the report as indented JSON: fields in struct
// declaration order, Data map keys sorted.
func (r *Report) ToJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newReport(code, phase, msg string, span *extern.Span) *Report {
	return &Report{Schema: schemaV1, Code: code, Phase: phase, Message: msg, Span: span}
}

// NameClash reports a symbol table insertion clashing with a prior entry.
func NameClash(name string, span, prevSpan extern.Span) *Report {
	r := newReport(SYM001, "symtab", fmt.Sprintf("name %q is already declared", name), &span)
	r.PrevSpan = &prevSpan
	r.Data = map[string]any{"name": name}
	return r
}

// MissingSolveDirective reports the absence of a minimize/maximize/satisfy directive.
func MissingSolveDirective() *Report {
	return newReport(SLV001, "canonicalize", "predicate has no solve directive", nil)
}

// NonConstArrayLength reports an array-size expression that cannot be
// evaluated to a compile-time integer.
func NonConstArrayLength(span extern.Span) *Report {
	return newReport(ARR001, "fix-array-sizes", "array length must be a compile-time constant", &span)
}

// InvalidConstArrayLength reports a resolved array length that is not
// a positive integer.
func InvalidConstArrayLength(span extern.Span, n int64) *Report {
	r := newReport(ARR002, "fix-array-sizes", fmt.Sprintf("array length %d is not a positive integer", n), &span)
	r.Data = map[string]any{"length": n}
	return r
}

// NonConstArrayIndex reports an index expression that cannot be folded.
func NonConstArrayIndex(span extern.Span) *Report {
	return newReport(ARR003, "array-scalarize", "array index must be a compile-time constant", &span)
}

// InvalidConstArrayIndex reports an invalid constant index. The
// array-scalarize pass reports negative and too-large indices with
// ArrayIndexOutOfBounds instead.
func InvalidConstArrayIndex(span extern.Span, idx int64) *Report {
	r := newReport(ARR004, "array-scalarize", fmt.Sprintf("array index %d is invalid", idx), &span)
	r.Data = map[string]any{"index": idx}
	return r
}

// ArrayIndexOutOfBounds reports a constant index outside [0, size).
func ArrayIndexOutOfBounds(span extern.Span, idx int64, size int64) *Report {
	r := newReport(ARR005, "array-scalarize", fmt.Sprintf("array index %d is out of bounds for size %d", idx, size), &span)
	r.Data = map[string]any{"index": idx, "size": size}
	return r
}

// MismatchedArrayComparisonSizes reports `==`/`!=` between differently
// sized arrays.
func MismatchedArrayComparisonSizes(span extern.Span, op string, lhs, rhs int) *Report {
	r := newReport(CMP001, "array-compare-lowering",
		fmt.Sprintf("mismatched array sizes in %q comparison: %d vs %d", op, lhs, rhs), &span)
	r.Data = map[string]any{"op": op, "lhs_size": lhs, "rhs_size": rhs}
	return r
}

// StatefulLibrary reports a Library-kind package that declares state
// variables.
func StatefulLibrary(pkgName string) *Report {
	r := newReport(LIB001, "build", fmt.Sprintf("library package %q may not declare state variables", pkgName), nil)
	r.Data = map[string]any{"package": pkgName}
	return r
}

// ContractLibrary reports an I/O failure synthesizing a dependency library.
func ContractLibrary(name string, cause error) *Report {
	r := newReport(LIB002, "build", fmt.Sprintf("failed to synthesize dependency library for %q: %v", name, cause), nil)
	r.Data = map[string]any{"package": name}
	return r
}

// DependencyCycle reports a cycle discovered while topologically
// sorting the package graph.
func DependencyCycle(cycle []string) *Report {
	r := newReport(LIB003, "build", fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> ")), nil)
	r.Data = map[string]any{"cycle": cycle}
	return r
}

// AsmGen is the assembly-generator catch-all.
func AsmGen(msg string, span extern.Span) *Report {
	return newReport(ASM001, "asm-gen", msg, &span)
}

// Flatten is the lowering-pass catch-all.
func Flatten(msg string, span extern.Span) *Report {
	return newReport(FLT001, "flatten", msg, &span)
}

// ABIGen is the ABI-generation catch-all.
func ABIGen(msg string, span extern.Span) *Report {
	return newReport(ABI001, "abi-gen", msg, &span)
}

// Internal reports an invariant violation that should not be reachable.
func Internal(msg string, span extern.Span) *Report {
	return newReport(INT001, "internal", msg, &span)
}

// Parse wraps a verbatim error from the external parser.
func Parse(cause error) *Report {
	return newReport(PAR001, "parse", cause.Error(), nil)
}

// TypeCheck wraps a verbatim error from the external type checker.
func TypeCheck(cause error) *Report {
	return newReport(CHK001, "typecheck", cause.Error(), nil)
}
