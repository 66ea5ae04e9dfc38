package build

import (
	"fmt"

	"github.com/pintlang/pintc/internal/abi"
	"github.com/pintlang/pintc/internal/diag"
	"github.com/pintlang/pintc/internal/extern"
	"github.com/pintlang/pintc/internal/ir"
	"github.com/pintlang/pintc/internal/lower"
)

// BuiltPkg is what the driver records for one successfully built node
// (spec.md §4.6 step 6: "Record the built package under its node key").
type BuiltPkg struct {
	Name       string
	Kind       Kind
	EntryPoint string // Library only: path downstream packages parse against
	Contract   *ir.Contract
	ABI        *abi.ContractABI
	Bundle     *abi.Bundle
	LibDir     string // synthesized dependency library root, Contract only
}

// Driver owns the external collaborators the core never implements
// (spec.md §6): parsing, type-checking, and the filesystem root
// synthesized dependency libraries are written under.
type Driver struct {
	Parser      extern.Parser
	TypeChecker extern.TypeChecker
	TmpRoot     string
	ArtifactDir string
}

// Build drives every node of plan to completion in topological order,
// leaves first. Failure policy is per-package fail-fast, plan-level
// partial results: the driver returns the map of everything built so
// far alongside the first error, never continuing past the failing
// package (spec.md §4.6: "If any step fails, the driver returns both
// the partial success set and the first error").
func (d *Driver) Build(plan *Plan, h *diag.Handler) (map[string]*BuiltPkg, error) {
	order, err := plan.TopoSort()
	if err != nil {
		return nil, err
	}

	built := make(map[string]*BuiltPkg, len(order))
	for _, key := range order {
		node := plan.Nodes[key]
		pkg, err := d.buildNode(node, built, h)
		if err != nil {
			return built, err
		}
		built[key] = pkg
	}
	return built, nil
}

func (d *Driver) buildNode(node *Node, built map[string]*BuiltPkg, h *diag.Handler) (*BuiltPkg, error) {
	// 1. Resolve each outgoing edge to the dependency's entry point.
	deps := make(map[string]string, len(node.Deps))
	for _, e := range node.Deps {
		dep, ok := built[e.To]
		if !ok {
			return nil, fmt.Errorf("package %q depends on %q, which has not been built yet", node.Key, e.To)
		}
		if dep.Kind == Library {
			deps[e.Name] = dep.EntryPoint
		} else {
			deps[e.Name] = dep.LibDir + "/lib.pnt"
		}
	}

	// 2. Parse.
	prog, err := d.Parser.Parse(node.Manifest.EntryPoint, deps)
	if err != nil {
		r := diag.Parse(err)
		h.Emit(r)
		return nil, r
	}

	// 3. Type-check.
	c, err := d.TypeChecker.Check(prog)
	if err != nil {
		r := diag.TypeCheck(err)
		h.Emit(r)
		return nil, r
	}

	if node.Manifest.Kind == Library {
		return d.finishLibrary(node, c, h)
	}
	return d.finishContract(node, c, h)
}

func (d *Driver) finishLibrary(node *Node, c *ir.Contract, h *diag.Handler) (*BuiltPkg, error) {
	stateful := false
	c.EachPredicate(func(_ ir.PredKey, p *ir.Predicate) bool {
		hasState := false
		p.EachState(func(_ ir.StateKey, _ *ir.State) bool {
			hasState = true
			return false
		})
		if hasState {
			stateful = true
			return false
		}
		return true
	})
	if stateful {
		r := diag.StatefulLibrary(node.Manifest.Name)
		h.Emit(r)
		return nil, r
	}
	return &BuiltPkg{Name: node.Manifest.Name, Kind: Library, EntryPoint: node.Manifest.EntryPoint, Contract: c}, nil
}

func (d *Driver) finishContract(node *Node, c *ir.Contract, h *diag.Handler) (*BuiltPkg, error) {
	lower.Contract(c, h)
	if h.HasErrors() {
		return nil, h.Errors()[len(h.Errors())-1]
	}

	compiled, predicateABIs, predicateCAs, err := compileAllPredicates(c, h)
	if err != nil {
		return nil, err
	}

	contractCA := abi.ContractAddress(predicateCAs, abi.ZeroSalt)
	contractABI := abi.ExtractContract(c, predicateABIs, contractCA)
	bundle := abi.Bundle{
		Schema:     abi.ContractSchemaV1,
		Predicates: compiled,
		Salt:       abi.ZeroSalt,
		Address:    contractCA,
	}

	if d.ArtifactDir != "" {
		if err := writeArtifacts(d.ArtifactDir, node.Manifest.Name, bundle, contractABI); err != nil {
			r := diag.ContractLibrary(node.Manifest.Name, err)
			h.Emit(r)
			return nil, r
		}
	}

	libDir := ""
	if d.TmpRoot != "" {
		dir, err := synthesizeDependencyLibrary(d.TmpRoot, contractCA, compiled)
		if err != nil {
			r := diag.ContractLibrary(node.Manifest.Name, err)
			h.Emit(r)
			return nil, r
		}
		libDir = dir
	}

	return &BuiltPkg{
		Name:     node.Manifest.Name,
		Kind:     Contract,
		Contract: c,
		ABI:      &contractABI,
		Bundle:   &bundle,
		LibDir:   libDir,
	}, nil
}
