package lower

import (
	"testing"

	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/ir"
)

func TestEvalFoldsArithmeticAndComparisons(t *testing.T) {
	c := ir.NewContract()
	two := c.AddExpr(&ir.LitInt{Value: 2}, &ir.Primitive{Kind: ir.TInt})
	three := c.AddExpr(&ir.LitInt{Value: 3}, &ir.Primitive{Kind: ir.TInt})
	sum := c.AddExpr(&ir.BinaryOp{Op: "+", LHS: two, RHS: three}, &ir.Primitive{Kind: ir.TInt})

	v, err := Eval(c, sum)
	if err != nil {
		t.Fatalf("Eval(2+3) returned error: %v", err)
	}
	if n, ok := v.AsInt(); !ok || n != 5 {
		t.Fatalf("Eval(2+3) = %v, want 5", v)
	}

	lt := c.AddExpr(&ir.BinaryOp{Op: "<", LHS: two, RHS: three}, &ir.Primitive{Kind: ir.TBool})
	v, err = Eval(c, lt)
	if err != nil || !v.Bool {
		t.Fatalf("Eval(2<3) = %v, %v; want true, nil", v, err)
	}
}

func TestEvalRejectsNonConstIdent(t *testing.T) {
	c := ir.NewContract()
	ident := c.AddExpr(&ir.Ident{Name: "x"}, &ir.Primitive{Kind: ir.TInt})
	if _, err := Eval(c, ident); err == nil {
		t.Fatalf("Eval of an unresolved identifier should fail")
	}
}

func TestFixArraySizesResolvesConstantLength(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	sizeExpr := c.AddExpr(&ir.LitInt{Value: 3}, &ir.Primitive{Kind: ir.TInt})
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, SizeExpr: sizeExpr}
	p.AddVar(&ir.Var{Name: "xs"}, arrType)
	c.AddPredicate(p)

	FixArraySizes(c, h)

	if h.HasErrors() {
		t.Fatalf("FixArraySizes reported unexpected errors: %v", h.Errors())
	}
	if arrType.Resolved == nil || *arrType.Resolved != 3 {
		t.Fatalf("FixArraySizes should resolve the array size to 3, got %+v", arrType)
	}
}

func TestFixArraySizesResolvesUnionVariantCount(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()

	c.AddUnion(&ir.UnionDecl{Name: "Color", Variants: []ir.UnionVariant{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}}})
	sizeExpr := c.AddExpr(&ir.Ident{Name: "Color"}, &ir.Primitive{Kind: ir.TInt})
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TBool}, SizeExpr: sizeExpr}
	p := ir.NewPredicate("P")
	p.AddVar(&ir.Var{Name: "flags"}, arrType)
	c.AddPredicate(p)

	FixArraySizes(c, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if arrType.Resolved == nil || *arrType.Resolved != 3 {
		t.Fatalf("array sized by a union should resolve to its variant count, got %+v", arrType)
	}
}

func TestFixArraySizesRejectsNonConstLength(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()

	notConst := c.AddExpr(&ir.Ident{Name: "n"}, &ir.Primitive{Kind: ir.TInt})
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, SizeExpr: notConst}
	p := ir.NewPredicate("P")
	p.AddVar(&ir.Var{Name: "xs"}, arrType)
	c.AddPredicate(p)

	FixArraySizes(c, h)

	if !h.HasErrors() {
		t.Fatalf("a non-constant array length should be reported")
	}
	if got := h.Errors()[0].Code; got != diag.ARR001 {
		t.Fatalf("expected ARR001, got %v", got)
	}
}

func TestCanonicalizeSolveDirectiveRewritesMinimize(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	objExpr := c.AddExpr(&ir.LitInt{Value: 42}, &ir.Primitive{Kind: ir.TInt})
	p.Directive = &ir.SolveDirective{Kind: ir.DirMinimize, Expr: &objExpr}
	c.AddPredicate(p)

	CanonicalizeSolveDirective(c, p, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if p.Directive.Objective == nil {
		t.Fatalf("canonicalize should populate Directive.Objective")
	}
	if len(p.Constraints) != 1 {
		t.Fatalf("canonicalize should add exactly one __objective == E constraint, got %d", len(p.Constraints))
	}
	eq, _ := c.Expr(p.Constraints[0].Expr)
	bin, ok := eq.(*ir.BinaryOp)
	if !ok || bin.Op != "==" {
		t.Fatalf("expected an == constraint, got %#v", eq)
	}
}

func TestCanonicalizeSolveDirectiveLeavesSatisfyAlone(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")
	p.Directive = &ir.SolveDirective{Kind: ir.DirSatisfy}
	c.AddPredicate(p)

	CanonicalizeSolveDirective(c, p, h)

	if h.HasErrors() {
		t.Fatalf("satisfy directives should never error: %v", h.Errors())
	}
	if len(p.Constraints) != 0 {
		t.Fatalf("satisfy should not introduce any constraint")
	}
}

func TestCanonicalizeSolveDirectiveMissingIsError(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")
	c.AddPredicate(p)

	CanonicalizeSolveDirective(c, p, h)

	if !h.HasErrors() {
		t.Fatalf("a predicate with no solve directive should report MissingSolveDirective")
	}
}

func TestArrayCompareLoweringExpandsEqualSizeArrays(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()

	size := int64(2)
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, Resolved: &size}

	lhs := c.AddExpr(&ir.Ident{Name: "a"}, arrType)
	rhs := c.AddExpr(&ir.Ident{Name: "b"}, arrType)
	eq := c.AddExpr(&ir.BinaryOp{Op: "==", LHS: lhs, RHS: rhs}, &ir.Primitive{Kind: ir.TBool})

	ArrayCompareLowering(c, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	e, _ := c.Expr(eq)
	bin, ok := e.(*ir.BinaryOp)
	if !ok || bin.Op != "&&" {
		t.Fatalf("a 2-element array comparison should become a single && of the two elementwise comparisons, got %#v", e)
	}
}

func TestArrayCompareLoweringReportsMismatchedSizes(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()

	two := int64(2)
	three := int64(3)
	lhs := c.AddExpr(&ir.Ident{Name: "a"}, &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, Resolved: &two})
	rhs := c.AddExpr(&ir.Ident{Name: "b"}, &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, Resolved: &three})
	c.AddExpr(&ir.BinaryOp{Op: "==", LHS: lhs, RHS: rhs}, &ir.Primitive{Kind: ir.TBool})

	ArrayCompareLowering(c, h)

	if !h.HasErrors() {
		t.Fatalf("mismatched array comparison sizes should be reported")
	}
}

func TestArrayScalarizeReplacesVarAndAccesses(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	n := int64(2)
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, Resolved: &n}
	vk := p.AddVar(&ir.Var{Name: "xs"}, arrType)

	baseIdent := c.AddExpr(&ir.Ident{Name: "xs", Var: &vk}, arrType)
	idx := c.AddExpr(&ir.LitInt{Value: 1}, &ir.Primitive{Kind: ir.TInt})
	access := c.AddExpr(&ir.ArrayElementAccess{Array: baseIdent, Index: idx}, &ir.Primitive{Kind: ir.TInt})
	p.Constraints = append(p.Constraints, ir.ConstraintDecl{Expr: access})
	c.AddPredicate(p)

	ArrayScalarize(c, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if _, ok := p.Var(vk); ok {
		t.Fatalf("the original array var should be removed after scalarization")
	}
	e, _ := c.Expr(access)
	id, ok := e.(*ir.Ident)
	if !ok || id.Name != "xs[1]" {
		t.Fatalf("xs[1] access should become a direct reference to xs[1], got %#v", e)
	}

	found := false
	p.EachVar(func(_ ir.VarKey, v *ir.Var) bool {
		if v.Name == "xs[1]" {
			found = true
		}
		return true
	})
	if !found {
		t.Fatalf("scalarization should have created a var named xs[1]")
	}
}

func TestArrayScalarizeReportsOutOfBoundsIndex(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	n := int64(2)
	arrType := &ir.Array{Elem: &ir.Primitive{Kind: ir.TInt}, Resolved: &n}
	vk := p.AddVar(&ir.Var{Name: "xs"}, arrType)

	baseIdent := c.AddExpr(&ir.Ident{Name: "xs", Var: &vk}, arrType)
	idx := c.AddExpr(&ir.LitInt{Value: 5}, &ir.Primitive{Kind: ir.TInt})
	access := c.AddExpr(&ir.ArrayElementAccess{Array: baseIdent, Index: idx}, &ir.Primitive{Kind: ir.TInt})
	p.Constraints = append(p.Constraints, ir.ConstraintDecl{Expr: access})
	c.AddPredicate(p)

	ArrayScalarize(c, h)

	if !h.HasErrors() {
		t.Fatalf("xs[5] on a 2-element array should report ArrayIndexOutOfBounds")
	}
}

func TestTupleScalarizeNamedFields(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	xName, yName := "x", "y"
	tupType := &ir.Tuple{Fields: []ir.TupleField{
		{Name: &xName, Type: &ir.Primitive{Kind: ir.TInt}},
		{Name: &yName, Type: &ir.Primitive{Kind: ir.TInt}},
	}}
	vk := p.AddVar(&ir.Var{Name: "pt"}, tupType)

	baseIdent := c.AddExpr(&ir.Ident{Name: "pt", Var: &vk}, tupType)
	access := c.AddExpr(&ir.TupleFieldAccess{Base: baseIdent, Name: &yName}, &ir.Primitive{Kind: ir.TInt})
	p.Constraints = append(p.Constraints, ir.ConstraintDecl{Expr: access})
	c.AddPredicate(p)

	TupleScalarize(c, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if _, ok := p.Var(vk); ok {
		t.Fatalf("the original tuple var should be removed after scalarization")
	}
	e, _ := c.Expr(access)
	id, ok := e.(*ir.Ident)
	if !ok || id.Name != "pt.y" {
		t.Fatalf("pt.y access should become a direct reference to pt.y, got %#v", e)
	}
}

func TestFlattenControlFlowRewritesIfAsImplication(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	cond := c.AddExpr(&ir.LitBool{Value: true}, &ir.Primitive{Kind: ir.TBool})
	thenBody := c.AddExpr(&ir.LitBool{Value: true}, &ir.Primitive{Kind: ir.TBool})
	elseBody := c.AddExpr(&ir.LitBool{Value: false}, &ir.Primitive{Kind: ir.TBool})
	p.Ifs = []ir.IfDecl{{
		Cond: cond,
		Then: []ir.ConstraintDecl{{Expr: thenBody}},
		Else: []ir.ConstraintDecl{{Expr: elseBody}},
	}}
	c.AddPredicate(p)

	FlattenControlFlow(c, p, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if len(p.Ifs) != 0 {
		t.Fatalf("flattening should clear Ifs, got %d left", len(p.Ifs))
	}
	if len(p.Constraints) != 2 {
		t.Fatalf("expected one constraint per then/else branch, got %d", len(p.Constraints))
	}

	thenConstraint, _ := c.Expr(p.Constraints[0].Expr)
	or, ok := thenConstraint.(*ir.BinaryOp)
	if !ok || or.Op != "||" {
		t.Fatalf("then-branch constraint should be `!cond || body`, got %#v", thenConstraint)
	}
	notCond, ok := mustExpr(c, or.LHS).(*ir.UnaryOp)
	if !ok || notCond.Op != "!" || notCond.Operand != cond {
		t.Fatalf("then-branch constraint's guard should negate the if condition, got %#v", mustExpr(c, or.LHS))
	}
	if or.RHS != thenBody {
		t.Fatalf("then-branch constraint should preserve the original body expression")
	}

	elseConstraint, _ := c.Expr(p.Constraints[1].Expr)
	orElse, ok := elseConstraint.(*ir.BinaryOp)
	if !ok || orElse.Op != "||" {
		t.Fatalf("else-branch constraint should be `!(!cond) || body`, got %#v", elseConstraint)
	}
	if orElse.RHS != elseBody {
		t.Fatalf("else-branch constraint should preserve the original body expression")
	}
}

func TestFlattenControlFlowRewritesMatchPerArm(t *testing.T) {
	c := ir.NewContract()
	h := diag.NewHandler()
	p := ir.NewPredicate("P")

	scrutinee := c.AddExpr(&ir.Ident{Name: "tag"}, &ir.UnionRef{Name: "Kind"})
	body := c.AddExpr(&ir.LitBool{Value: true}, &ir.Primitive{Kind: ir.TBool})
	p.Matches = []ir.MatchDecl{{
		Scrutinee: scrutinee,
		Arms: []ir.MatchDeclArm{{
			Pattern:     ir.MatchPattern{Variant: "A"},
			Constraints: []ir.ConstraintDecl{{Expr: body}},
		}},
	}}
	c.AddPredicate(p)

	FlattenControlFlow(c, p, h)

	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Errors())
	}
	if len(p.Matches) != 0 {
		t.Fatalf("flattening should clear Matches, got %d left", len(p.Matches))
	}
	if len(p.Constraints) != 1 {
		t.Fatalf("expected one constraint for the single arm, got %d", len(p.Constraints))
	}

	constraint, _ := c.Expr(p.Constraints[0].Expr)
	or, ok := constraint.(*ir.BinaryOp)
	if !ok || or.Op != "||" || or.RHS != body {
		t.Fatalf("arm constraint should be `!armCond || body`, got %#v", constraint)
	}
	notArmCond, ok := mustExpr(c, or.LHS).(*ir.UnaryOp)
	if !ok || notArmCond.Op != "!" {
		t.Fatalf("arm constraint's guard should negate the arm's variant test, got %#v", mustExpr(c, or.LHS))
	}
	armCond, ok := mustExpr(c, notArmCond.Operand).(*ir.Match)
	if !ok || armCond.Scrutinee != scrutinee || len(armCond.Branches) != 1 || armCond.Branches[0].Pattern.Variant != "A" {
		t.Fatalf("arm guard should be a one-branch Match testing variant %q, got %#v", "A", armCond)
	}
}

func mustExpr(c *ir.Contract, k ir.ExprKey) ir.Expr {
	e, _ := c.Expr(k)
	return e
}
