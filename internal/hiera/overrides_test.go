package hiera

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOverrideFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadVariables_OrderedPairs(t *testing.T) {
	path := writeOverrideFile(t, `variables:
  role: webserver
  datacenter: ams1
  tier: "2"
`)

	vars, err := ReadVariables(path)
	if err != nil {
		t.Fatalf("ReadVariables failed: %v", err)
	}

	want := []Variable{
		{Key: "role", Value: "webserver"},
		{Key: "datacenter", Value: "ams1"},
		{Key: "tier", Value: "2"},
	}
	if len(vars) != len(want) {
		t.Fatalf("got %d variables, want %d: %v", len(vars), len(want), vars)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Errorf("variable %d = %+v, want %+v", i, vars[i], want[i])
		}
	}
}

func TestReadVariables_KeyAbsent(t *testing.T) {
	path := writeOverrideFile(t, `settings:
  unrelated: true
`)

	vars, err := ReadVariables(path)
	if err != nil {
		t.Fatalf("ReadVariables failed: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("absent variables key should yield no variables, got %v", vars)
	}
}

func TestReadVariables_EmptyMapping(t *testing.T) {
	path := writeOverrideFile(t, "variables:\n")

	vars, err := ReadVariables(path)
	if err != nil {
		t.Fatalf("ReadVariables failed: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("empty mapping should yield no variables, got %v", vars)
	}
}

func TestReadVariables_EmptyPath(t *testing.T) {
	vars, err := ReadVariables("")
	if err != nil || vars != nil {
		t.Errorf("empty path should be a no-op, got %v, %v", vars, err)
	}
}

func TestReadVariables_MissingFile(t *testing.T) {
	vars, err := ReadVariables(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should default to empty, got: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("missing file should yield no variables, got %v", vars)
	}
}

func TestReadVariables_Malformed(t *testing.T) {
	path := writeOverrideFile(t, "variables: [unclosed\n")

	if _, err := ReadVariables(path); err == nil {
		t.Fatal("expected error for malformed override file")
	}
}
