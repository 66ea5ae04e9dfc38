package build

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// fileManifest is the on-disk shape of a package manifest (spec.md §6:
// "Every package provides: a name, a kind ... and an entry-point file
// path"). YAML is the teacher's serialization choice for hand-authored
// descriptor files (internal/eval_harness's spec/model YAML), reused
// here for the one artifact in this driver meant to be hand-edited
// rather than produced by a prior compiler phase.
type fileManifest struct {
	Name       string            `yaml:"name"`
	Kind       string            `yaml:"kind"`
	EntryPoint string            `yaml:"entry_point"`
	Deps       map[string]string `yaml:"deps"` // import name -> dependency node key
}

// LoadManifest reads a package manifest from path and builds the Plan
// Node it describes. deps maps each `deps:` entry to a Plan node key.
func LoadManifest(path string) (*Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m fileManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	kind := Contract
	if m.Kind == "library" {
		kind = Library
	}

	node := &Node{
		Key:      m.Name,
		Manifest: Manifest{Name: m.Name, Kind: kind, EntryPoint: m.EntryPoint},
	}
	names := make([]string, 0, len(m.Deps))
	for importName := range m.Deps {
		names = append(names, importName)
	}
	sort.Strings(names)
	for _, importName := range names {
		node.Deps = append(node.Deps, Edge{Name: importName, To: m.Deps[importName]})
	}
	return node, nil
}
