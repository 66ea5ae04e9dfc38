package build

import (
	"sort"

	"github.com/pintlang/pintc/internal/diag"
)

// Edge is one dependency edge, labeled with the name the depending
// package imports it under (spec.md §6: "edge weight { name: string }").
type Edge struct {
	Name string
	To   string // target node key
}

// Node is one package in the Plan graph.
type Node struct {
	Key      string
	Manifest Manifest
	Deps     []Edge
}

// Plan is the directed acyclic package graph the driver consumes
// (spec.md §4.6: "a Plan — a directed acyclic package graph ... plus a
// topologically sorted compilation order"). The driver owns no parsing
// of this format; it only verifies and walks the structure it is given.
type Plan struct {
	Nodes map[string]*Node
	Root  string
}

// NewPlan returns an empty Plan rooted at root.
func NewPlan(root string) *Plan {
	return &Plan{Nodes: make(map[string]*Node), Root: root}
}

// AddNode registers a package node.
func (p *Plan) AddNode(n *Node) { p.Nodes[n.Key] = n }

// TopoSort recomputes a dependencies-first compilation order, verifying
// the graph the caller supplied is acyclic. Grounded on the teacher's
// internal/link.TopoSortFromRoot: a DFS with visited/inPath sets that
// reconstructs the offending cycle for the error message, generalized
// here from a single root to every node in the Plan.
func (p *Plan) TopoSort() ([]string, error) {
	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var path []string
	var sorted []string

	var dfs func(key string) error
	dfs = func(key string) error {
		if visited[key] {
			return nil
		}
		if inPath[key] {
			cycle := append([]string(nil), path...)
			cycle = append(cycle, key)
			start := 0
			for i, k := range cycle {
				if k == key {
					start = i
					break
				}
			}
			return diag.DependencyCycle(cycle[start:])
		}

		inPath[key] = true
		path = append(path, key)

		node, ok := p.Nodes[key]
		if !ok {
			inPath[key] = false
			path = path[:len(path)-1]
			return nil
		}
		for _, e := range node.Deps {
			if err := dfs(e.To); err != nil {
				return err
			}
		}

		visited[key] = true
		inPath[key] = false
		path = path[:len(path)-1]
		sorted = append(sorted, key)
		return nil
	}

	keys := make([]string, 0, len(p.Nodes))
	for k := range p.Nodes {
		keys = append(keys, k)
	}
	// Deterministic iteration: walk the root first, then every
	// remaining node in sorted key order, so components the root
	// doesn't reach are still ordered stably.
	sort.Strings(keys)
	if p.Root != "" {
		if err := dfs(p.Root); err != nil {
			return nil, err
		}
	}
	for _, k := range keys {
		if err := dfs(k); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
