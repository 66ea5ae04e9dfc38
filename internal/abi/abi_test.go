package abi

import (
	"testing"

	"github.com/pintlang/pintc/internal/ir"
)

func TestPredicateAddressIsStableAcrossCalls(t *testing.T) {
	stateRead := [][]byte{{1, 2, 3}}
	constraints := [][]byte{{4, 5}, {6}}
	directive := &ir.SolveDirective{Kind: ir.DirSatisfy}

	a := PredicateAddress(stateRead, constraints, directive)
	b := PredicateAddress(stateRead, constraints, directive)
	if a != b {
		t.Fatalf("PredicateAddress is not deterministic: %v != %v", a, b)
	}
}

func TestPredicateAddressDiffersOnPayload(t *testing.T) {
	directive := &ir.SolveDirective{Kind: ir.DirSatisfy}
	a := PredicateAddress([][]byte{{1}}, nil, directive)
	b := PredicateAddress([][]byte{{2}}, nil, directive)
	if a == b {
		t.Fatalf("PredicateAddress should differ when the bytecode differs")
	}
}

func TestContractAddressIndependentOfInputOrder(t *testing.T) {
	d := &ir.SolveDirective{Kind: ir.DirSatisfy}
	p1 := PredicateAddress([][]byte{{1}}, nil, d)
	p2 := PredicateAddress([][]byte{{2}}, nil, d)

	ca1 := ContractAddress([]Address{p1, p2}, ZeroSalt)
	ca2 := ContractAddress([]Address{p2, p1}, ZeroSalt)
	if ca1 != ca2 {
		t.Fatalf("ContractAddress must not depend on predicate-list order: %v != %v", ca1, ca2)
	}
}

func TestMarshalABIProducesDeterministicBytes(t *testing.T) {
	a := ContractABI{
		Schema: ContractSchemaV1,
		Storage: []StorageVarABI{
			{Name: "balance", Type: "int"},
		},
		Predicates: []PredicateABI{
			{Name: "Transfer", Directive: "satisfy"},
		},
	}
	out1, err := MarshalABI(a)
	if err != nil {
		t.Fatalf("MarshalABI returned error: %v", err)
	}
	out2, err := MarshalABI(a)
	if err != nil {
		t.Fatalf("MarshalABI returned error: %v", err)
	}
	if string(out1) != string(out2) {
		t.Fatalf("MarshalABI is not deterministic: %s != %s", out1, out2)
	}
}
