package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestGoldenBundleJSON pins the serialized content of a compiled
// contract bundle (spec.md §6 "<name>.json"): hex addresses, opcode
// bytes as arrays of ints. Both sides are re-encoded before comparison,
// so key order and whitespace are not checked here.
func TestGoldenBundleJSON(t *testing.T) {
	tests := []struct {
		name     string
		bundle   map[string]interface{}
		wantJSON string
	}{
		{
			name: "single_predicate_no_state",
			bundle: map[string]interface{}{
				"schema": BundleV1,
				"salt":   "0000000000000000000000000000000000000000000000000000000000000000",
				"address": map[string]interface{}{
					"hex": "0xaa",
				},
				"predicates": []interface{}{
					map[string]interface{}{
						"name":        "root",
						"directive":   "satisfy",
						"state_read":  []interface{}{},
						"constraints": []interface{}{[]interface{}{0, 1, 0, 1, 9}},
						"address": map[string]interface{}{
							"hex": "0xbb",
						},
					},
				},
			},
			wantJSON: `{
  "address": {
    "hex": "0xaa"
  },
  "predicates": [
    {
      "address": {
        "hex": "0xbb"
      },
      "constraints": [
        [0, 1, 0, 1, 9]
      ],
      "directive": "satisfy",
      "name": "root",
      "state_read": []
    }
  ],
  "salt": "0000000000000000000000000000000000000000000000000000000000000000",
  "schema": "pintc.bundle/v1"
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalDeterministic(tt.bundle)
			if err != nil {
				t.Fatalf("MarshalDeterministic() error = %v", err)
			}
			formatted, err := FormatJSON(got)
			if err != nil {
				t.Fatalf("FormatJSON() error = %v", err)
			}

			wantNorm := normalizeJSON(t, tt.wantJSON)
			gotNorm := normalizeJSON(t, string(formatted))
			if gotNorm != wantNorm {
				t.Errorf("JSON mismatch:\nGot:\n%s\nWant:\n%s", gotNorm, wantNorm)
			}

			var parsed map[string]interface{}
			if err := json.Unmarshal(got, &parsed); err != nil {
				t.Fatalf("Failed to parse JSON: %v", err)
			}
			schemaField, ok := parsed["schema"].(string)
			if !ok {
				t.Fatal("Missing schema field in JSON output")
			}
			if !Accepts(schemaField, BundleV1) {
				t.Errorf("Schema %q does not accept %q", schemaField, BundleV1)
			}
		})
	}
}

// TestGoldenABIJSON pins the extracted ABI's serialized shape
// (spec.md §4.5 ContractABI, §6 "<name>-abi.json").
func TestGoldenABIJSON(t *testing.T) {
	abi := map[string]interface{}{
		"schema": ABIV1,
		"storage": []interface{}{
			map[string]interface{}{"name": "x", "type": "int"},
		},
		"predicates": []interface{}{
			map[string]interface{}{
				"name":      "root",
				"directive": "satisfy",
				"vars": []interface{}{
					map[string]interface{}{"name": "y", "type": "int", "pub": false},
				},
				"address": map[string]interface{}{"hex": "0xcc"},
			},
		},
		"address": map[string]interface{}{"hex": "0xdd"},
	}

	wantJSON := `{
  "address": {"hex": "0xdd"},
  "predicates": [
    {
      "address": {"hex": "0xcc"},
      "directive": "satisfy",
      "name": "root",
      "vars": [
        {"name": "y", "pub": false, "type": "int"}
      ]
    }
  ],
  "schema": "pintc.abi/v1",
  "storage": [
    {"name": "x", "type": "int"}
  ]
}`

	got, err := MarshalDeterministic(abi)
	if err != nil {
		t.Fatalf("MarshalDeterministic() error = %v", err)
	}
	formatted, err := FormatJSON(got)
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	wantNorm := normalizeJSON(t, wantJSON)
	gotNorm := normalizeJSON(t, string(formatted))
	if gotNorm != wantNorm {
		t.Errorf("JSON mismatch:\nGot:\n%s\nWant:\n%s", gotNorm, wantNorm)
	}
}

// TestGoldenCompactMode tests that compact mode works correctly
func TestGoldenCompactMode(t *testing.T) {
	data := map[string]interface{}{
		"schema": BundleV1,
		"address": map[string]interface{}{
			"hex": "0xaa",
		},
	}

	// Test pretty mode
	SetCompactMode(false)
	pretty, err := MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic error = %v", err)
	}
	prettyFormatted, err := FormatJSON(pretty)
	if err != nil {
		t.Fatalf("FormatJSON error = %v", err)
	}

	if !strings.Contains(string(prettyFormatted), "\n") {
		t.Error("Pretty mode should contain newlines")
	}

	// Test compact mode
	SetCompactMode(true)
	compact, err := MarshalDeterministic(data)
	if err != nil {
		t.Fatalf("MarshalDeterministic error = %v", err)
	}
	compactFormatted, err := FormatJSON(compact)
	if err != nil {
		t.Fatalf("FormatJSON error = %v", err)
	}

	if strings.Contains(string(compactFormatted), "\n") {
		t.Error("Compact mode should not contain newlines")
	}

	wantCompact := `{"address":{"hex":"0xaa"},"schema":"pintc.bundle/v1"}`
	if string(compactFormatted) != wantCompact {
		t.Errorf("Compact JSON mismatch:\nGot:  %s\nWant: %s", string(compactFormatted), wantCompact)
	}

	// Reset to default
	SetCompactMode(false)
}

// TestAcceptsCompatibility tests schema version compatibility
func TestAcceptsCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		want     string
		expected bool
	}{
		{"exact bundle v1", BundleV1, BundleV1, true},
		{"exact abi v1", ABIV1, ABIV1, true},

		{"bundle v1.1", "pintc.bundle/v1.1", BundleV1, true},
		{"abi v1.2.3", "pintc.abi/v1.2.3", ABIV1, true},

		{"bundle v2", "pintc.bundle/v2", BundleV1, false},
		{"abi v2", "pintc.abi/v2", ABIV1, false},

		{"wrong schema", ABIV1, BundleV1, false},
		{"wrong schema 2", BundleV1, ABIV1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accepts(tt.got, tt.want); got != tt.expected {
				t.Errorf("Accepts(%q, %q) = %v, want %v", tt.got, tt.want, got, tt.expected)
			}
		})
	}
}

// normalizeJSON normalizes JSON for comparison by parsing and re-formatting
func normalizeJSON(t *testing.T, jsonStr string) string {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		t.Fatalf("Invalid JSON: %v\nJSON: %s", err, jsonStr)
	}

	normalized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatalf("Failed to normalize JSON: %v", err)
	}

	return string(normalized)
}
