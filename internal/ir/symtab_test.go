package ir

import (
	"testing"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
)

func TestSymbolTableInsertIfAbsentNeverFails(t *testing.T) {
	st := NewSymbolTable()
	span := extern.Span{Path: "a.pnt", StartLine: 1}

	full1 := st.InsertIfAbsent("pkg::", "Pred", "x", span)
	full2 := st.InsertIfAbsent("pkg::", "Pred", "x", extern.Span{Path: "a.pnt", StartLine: 2})

	if full1 != full2 {
		t.Fatalf("full names differ: %q vs %q", full1, full2)
	}
	if got, ok := st.Lookup(full1); !ok || got.StartLine != 1 {
		t.Fatalf("Lookup should keep first span, got %+v ok=%v", got, ok)
	}
}

func TestSymbolTableInsertCheckedReportsClash(t *testing.T) {
	st := NewSymbolTable()
	span1 := extern.Span{Path: "a.pnt", StartLine: 1}
	span2 := extern.Span{Path: "a.pnt", StartLine: 5}

	if _, rep := st.InsertChecked("", "", "x", span1); rep != nil {
		t.Fatalf("first insert should not clash: %v", rep)
	}
	_, rep := st.InsertChecked("", "", "x", span2)
	if rep == nil {
		t.Fatalf("second insert of same name should clash")
	}
	if rep.Code != diag.SYM001 {
		t.Fatalf("clash code = %s, want %s", rep.Code, diag.SYM001)
	}
	if rep.PrevSpan == nil || rep.PrevSpan.StartLine != 1 {
		t.Fatalf("clash should carry the first declaration's span")
	}
}

func TestFullyQualify(t *testing.T) {
	if got := FullyQualify("pkg::", "", "x"); got != "pkg::x" {
		t.Fatalf("FullyQualify without scope = %q", got)
	}
	if got := FullyQualify("pkg::", "Pred", "x"); got != "pkg::Pred::x" {
		t.Fatalf("FullyQualify with scope = %q", got)
	}
}

func TestCheckForClash(t *testing.T) {
	h := diag.NewHandler()
	a := NewSymbolTable()
	b := NewSymbolTable()

	spanA := extern.Span{Path: "a.pnt", StartLine: 1}
	spanB := extern.Span{Path: "b.pnt", StartLine: 9}

	a.InsertIfAbsent("", "", "shared", spanA)
	b.InsertIfAbsent("", "", "shared", spanB)
	b.InsertIfAbsent("", "", "onlyB", spanB)

	a.CheckForClash(b, h)

	if !h.HasErrors() {
		t.Fatalf("expected a clash to be reported")
	}
	errs := h.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one clash, got %d", len(errs))
	}
	if _, ok := a.Lookup("onlyB"); !ok {
		t.Fatalf("non-clashing name from b should merge into a")
	}
}
