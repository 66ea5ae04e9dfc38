package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pintlang/pintc/internal/abi"
)

// synthesizeDependencyLibrary writes a temporary package exposing a
// built contract's content addresses as source-level constants, so
// downstream packages can reference them by name (spec.md §4.6 step 5,
// §6 "Dependency library (produced)"). The directory is scoped to the
// contract's content address, so concurrent writes of identical
// content are safe by construction (spec.md §5).
func synthesizeDependencyLibrary(tmpRoot string, contractCA abi.Address, predicates []abi.CompiledPredicate) (string, error) {
	dir := filepath.Join(tmpRoot, contractCA.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := writeAddressConstant(filepath.Join(dir, "lib.pnt"), contractCA); err != nil {
		return "", err
	}

	for _, p := range predicates {
		segments := strings.Split(p.Name, "::")
		if len(segments) == 1 && segments[0] == "" {
			segments = []string{"root"}
		}
		relPath := filepath.Join(segments...) + ".pnt"
		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return "", err
		}
		if err := writeAddressConstant(fullPath, p.Address); err != nil {
			return "", err
		}
	}

	return dir, nil
}

func writeAddressConstant(path string, addr abi.Address) error {
	content := fmt.Sprintf("const ADDRESS: b256 = 0x%s;\n", addr.String())
	return os.WriteFile(path, []byte(content), 0o644)
}
