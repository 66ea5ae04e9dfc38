package build

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pintlang/pintc/internal/abi"
	"github.com/pintlang/pintc/internal/schema"
)

// writeArtifacts emits `<name>.json` (the serialized contract bundle)
// and `<name>-abi.json` (the ABI) for a built contract, formatted by
// schema.FormatJSON: indented, or single-line when compact mode is on
// (spec.md §6: "Built artifact ... pretty-printed JSON"). Each payload
// is schema-validated before it touches disk, so a future schema bump
// on one side of a read/write pair fails the build instead of
// silently writing an artifact a reader can't accept.
func writeArtifacts(dir, name string, bundle abi.Bundle, contractABI abi.ContractABI) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	bundleJSON, err := schema.MarshalDeterministic(bundle)
	if err != nil {
		return err
	}
	if err := validateSchema(bundleJSON, abi.ContractSchemaV1); err != nil {
		return err
	}
	bundlePretty, err := schema.FormatJSON(bundleJSON)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), bundlePretty, 0o644); err != nil {
		return err
	}

	abiJSON, err := abi.MarshalABI(contractABI)
	if err != nil {
		return err
	}
	if err := validateSchema(abiJSON, abi.ABISchemaV1); err != nil {
		return err
	}
	abiPretty, err := schema.FormatJSON(abiJSON)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+"-abi.json"), abiPretty, 0o644)
}

func validateSchema(encoded []byte, want string) error {
	var m map[string]any
	if err := json.Unmarshal(encoded, &m); err != nil {
		return err
	}
	return schema.MustValidate(want, m)
}
