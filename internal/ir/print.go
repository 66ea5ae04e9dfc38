package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Pretty renders a contract as an indented outline. It is a debugging
// aid for test failures (SPEC_FULL.md §3; the CLI has no IR-dump
// flag), not a stable serialization format — compare internal/core.Pretty in
// the teacher, which plays the same role for Core programs.
func Pretty(c *Contract) string {
	var b strings.Builder
	fmt.Fprintf(&b, "contract {\n")
	if c.Storage != nil {
		fmt.Fprintf(&b, "  storage {\n")
		for _, v := range c.Storage.Vars {
			fmt.Fprintf(&b, "    %s: %s\n", v.Name, v.Type)
		}
		fmt.Fprintf(&b, "  }\n")
	}
	names := make([]string, 0, len(c.Consts))
	for n := range c.Consts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "  const %s: %s\n", n, c.Consts[n].DeclaredType)
	}
	c.EachPredicate(func(k PredKey, p *Predicate) bool {
		b.WriteString(PrettyPredicate(p, "  "))
		return true
	})
	b.WriteString("}\n")
	return b.String()
}

// PrettyPredicate renders one predicate with the given indent prefix.
func PrettyPredicate(p *Predicate, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%spredicate %s {\n", indent, p.Name)
	p.EachVar(func(k VarKey, v *Var) bool {
		t, _ := p.VarType(k)
		pub := ""
		if v.IsPub {
			pub = "pub "
		}
		fmt.Fprintf(&b, "%s  %svar %s: %s\n", indent, pub, v.Name, t)
		return true
	})
	p.EachState(func(k StateKey, s *State) bool {
		t, _ := p.StateType(k)
		fmt.Fprintf(&b, "%s  state %s: %s\n", indent, s.Name, t)
		return true
	})
	for _, cd := range p.Constraints {
		fmt.Fprintf(&b, "%s  constraint #%v\n", indent, cd.Expr)
	}
	fmt.Fprintf(&b, "%s}\n", indent)
	return b.String()
}
