package ir

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
)

// SymbolTable maps fully-qualified names to the span where they were
// first introduced (spec.md §4.1). It is the generalization of the
// teacher's module-identity bookkeeping (internal/module.Loader
// tracks one name -> file; here every declaration in a contract gets
// a first-declaration span for NameClash diagnostics).
type SymbolTable struct {
	first map[string]extern.Span
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{first: make(map[string]extern.Span)}
}

// FullyQualify builds `mod_prefix + (scope + "::")? + name` (spec.md
// §4.1). Each component is Unicode NFC-normalized first, the same
// normalization the teacher applies at its lexer boundary
// (internal/lexer.Normalize), moved here since two spellings of the
// same identifier must collide for NameClash purposes regardless of
// which Unicode form the source file used.
func FullyQualify(prefix, scope, name string) string {
	prefix, scope, name = normalizeIdent(prefix), normalizeIdent(scope), normalizeIdent(name)
	if scope == "" {
		return prefix + name
	}
	return prefix + scope + "::" + name
}

func normalizeIdent(s string) string {
	if s == "" || norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// InsertIfAbsent records name's first declaration if not already
// present and never fails; it returns the fully-qualified name either way.
func (t *SymbolTable) InsertIfAbsent(prefix, scope, name string, span extern.Span) string {
	full := FullyQualify(prefix, scope, name)
	if _, ok := t.first[full]; !ok {
		t.first[full] = span
	}
	return full
}

// InsertChecked records name's first declaration, or reports a
// diag.Report NameClash if the fully-qualified name was already taken.
func (t *SymbolTable) InsertChecked(prefix, scope, name string, span extern.Span) (string, *diag.Report) {
	full := FullyQualify(prefix, scope, name)
	if prev, ok := t.first[full]; ok {
		return full, diag.NameClash(full, span, prev)
	}
	t.first[full] = span
	return full, nil
}

// Lookup returns the span a fully-qualified name was first declared at.
func (t *SymbolTable) Lookup(fullName string) (extern.Span, bool) {
	s, ok := t.first[fullName]
	return s, ok
}

// CheckForClash reports every name present in both tables into h,
// under the span recorded in other (spec.md §4.1: "aggregates into the
// handler"). Used when merging a predicate's local symbols into the
// contract-level table, or a package's exports into a dependent's scope.
func (t *SymbolTable) CheckForClash(other *SymbolTable, h *diag.Handler) {
	for name, span := range other.first {
		if prev, ok := t.first[name]; ok {
			h.Emit(diag.NameClash(name, span, prev))
			continue
		}
		t.first[name] = span
	}
}

// Names returns every fully-qualified name currently tracked, useful
// for debugging and golden-file output; order is unspecified.
func (t *SymbolTable) Names() []string {
	out := make([]string, 0, len(t.first))
	for n := range t.first {
		out = append(out, n)
	}
	return out
}

func (t *SymbolTable) String() string {
	return fmt.Sprintf("SymbolTable(%d names)", len(t.first))
}
