package abi

import (
	"github.com/pintlang/pintc/internal/ir"
	"github.com/pintlang/pintc/internal/schema"
)

// ContractSchemaV1 and ABISchemaV1 alias the canonical version strings
// from internal/schema, which also knows how to check forward
// compatibility (schema.Accepts) and validate a decoded artifact
// (schema.MustValidate).
const (
	ContractSchemaV1 = schema.BundleV1
	ABISchemaV1      = schema.ABIV1
)

// VarABI describes one predicate variable's public shape.
type VarABI struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Pub  bool   `json:"pub"`
}

// StorageVarABI describes one top-level storage variable.
type StorageVarABI struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// PredicateABI is one predicate's extracted public interface.
type PredicateABI struct {
	Name      string   `json:"name"`
	Vars      []VarABI `json:"vars"`
	Directive string   `json:"directive"`
	Address   Address  `json:"address"`
}

// ContractABI is a whole contract's extracted public interface.
type ContractABI struct {
	Schema     string          `json:"schema"`
	Storage    []StorageVarABI `json:"storage"`
	Predicates []PredicateABI  `json:"predicates"`
	Address    Address         `json:"address"`
}

// ExtractPredicate builds a predicate's ABI entry from its IR and its
// already-computed content address.
func ExtractPredicate(p *ir.Predicate, addr Address) PredicateABI {
	out := PredicateABI{Name: p.Name, Address: addr, Directive: "satisfy"}
	if p.Directive != nil {
		out.Directive = p.Directive.Kind.String()
	}
	p.EachVar(func(k ir.VarKey, v *ir.Var) bool {
		t, _ := p.VarType(k)
		out.Vars = append(out.Vars, VarABI{Name: v.Name, Type: typeString(t), Pub: v.IsPub})
		return true
	})
	return out
}

// ExtractContract builds a whole contract's ABI, given the already
// content-addressed predicate ABIs in declaration order.
func ExtractContract(c *ir.Contract, predicates []PredicateABI, addr Address) ContractABI {
	out := ContractABI{Schema: ContractSchemaV1, Address: addr, Predicates: predicates}
	if c.Storage != nil {
		for _, v := range c.Storage.Vars {
			out.Storage = append(out.Storage, StorageVarABI{Name: v.Name, Type: typeString(v.Type)})
		}
	}
	return out
}

func typeString(t ir.Type) string {
	if t == nil {
		return ""
	}
	if s, ok := t.(interface{ String() string }); ok {
		return s.String()
	}
	return "?"
}
