package hiera

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `---
:backends:
  - yaml
:yaml:
  :datadir: /etc/puppet/hieradata
:hierarchy:
  - "node/%{::fqdn}"
  - "hardware/%{::hardwaremodel}"
  - common
`

// hierarchyEntries returns the unquoted values of the hierarchy list in a
// rewritten config.
func hierarchyEntries(t *testing.T, rewritten []byte) []string {
	t.Helper()

	var entries []string
	in := false
	for _, line := range strings.Split(string(rewritten), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(line, ":hierarchy") {
			in = true
			continue
		}
		if in && strings.HasPrefix(trimmed, "- ") {
			value, _ := parseEntry(trimmed)
			entries = append(entries, value)
			continue
		}
		in = false
	}
	return entries
}

func TestRewrite_PrefixesAllEntries(t *testing.T) {
	out := Rewrite([]byte(sampleConfig), "/srv/hoi-env/hieradata", "")

	entries := hierarchyEntries(t, out)
	want := []string{
		"srv/hoi-env/hieradata/node/%{::fqdn}",
		"srv/hoi-env/hieradata/hardware/%{::hardwaremodel}",
		"srv/hoi-env/hieradata/common",
	}

	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entries[i], want[i])
		}
	}
}

func TestRewrite_DatadirPointsAtRoot(t *testing.T) {
	out := Rewrite([]byte(sampleConfig), "/srv/hoi-env/hieradata", "")

	if !strings.Contains(string(out), "  :datadir: /\n") {
		t.Errorf("datadir should be rewritten to the filesystem root with original indentation, got:\n%s", out)
	}
	if strings.Contains(string(out), "/etc/puppet/hieradata") {
		t.Error("original datadir value should not survive the rewrite")
	}
}

func TestRewrite_InjectsOverrideFirst(t *testing.T) {
	out := Rewrite([]byte(sampleConfig), "/srv/hoi-env/hieradata", "tmp/local")

	entries := hierarchyEntries(t, out)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4: %v", len(entries), entries)
	}
	if entries[0] != "tmp/local" {
		t.Errorf("entry 0 = %q, want the override entry unprefixed", entries[0])
	}
	if entries[1] != "srv/hoi-env/hieradata/node/%{::fqdn}" {
		t.Errorf("entry 1 = %q, original first entry should shift down", entries[1])
	}
	if entries[3] != "srv/hoi-env/hieradata/common" {
		t.Errorf("entry 3 = %q, original order should be preserved", entries[3])
	}
}

func TestRewrite_UnrelatedLinesUntouched(t *testing.T) {
	src := `---
# lookup settings for the development environment
:backends:
  - yaml
:logger: console
:yaml:
  :datadir: /var/lib/hiera
:hierarchy:
  - common
:merge_behavior: deeper
`
	out := string(Rewrite([]byte(src), "/data", ""))

	for _, line := range []string{
		"---",
		"# lookup settings for the development environment",
		":backends:",
		"  - yaml",
		":logger: console",
		":merge_behavior: deeper",
	} {
		if !strings.Contains(out+"\n", line+"\n") {
			t.Errorf("line %q should pass through unmodified, got:\n%s", line, out)
		}
	}
}

func TestRewrite_BackendsListNotPrefixed(t *testing.T) {
	// The "- yaml" under :backends: precedes the hierarchy block and must
	// not be treated as a hierarchy entry.
	out := string(Rewrite([]byte(sampleConfig), "/data", "tmp/local"))

	if !strings.Contains(out, "  - yaml\n") {
		t.Errorf("backends entry should be untouched, got:\n%s", out)
	}
}

func TestRewrite_BlockEndsAtNonEntryLine(t *testing.T) {
	src := `:hierarchy:
  - common

  - straggler
`
	out := string(Rewrite([]byte(src), "/data", "tmp/local"))

	if !strings.Contains(out, "- tmp/local\n") {
		t.Error("override entry should be injected ahead of the first entry")
	}
	if !strings.Contains(out, "- data/common\n") {
		t.Error("first entry should be prefixed")
	}
	if !strings.Contains(out, "  - straggler\n") {
		t.Error("entry after the blank line is outside the block and must not be rewritten")
	}
}

func TestRewrite_EmptyHierarchyNoInjection(t *testing.T) {
	src := `:hierarchy:
:logger: console
`
	out := string(Rewrite([]byte(src), "/data", "tmp/local"))

	if strings.Contains(out, "tmp/local") {
		t.Errorf("no override entry should be injected next to an empty block, got:\n%s", out)
	}
}

func TestRewrite_QuotingPreserved(t *testing.T) {
	src := ":hierarchy:\n  - \"node/%{::fqdn}\"\n  - common\n"
	out := string(Rewrite([]byte(src), "/data", "tmp/local"))

	if !strings.Contains(out, `  - "tmp/local"`) {
		t.Errorf("override entry should take the quoting style of the entry it precedes, got:\n%s", out)
	}
	if !strings.Contains(out, `  - "data/node/%{::fqdn}"`) {
		t.Errorf("quoted entry should stay quoted, got:\n%s", out)
	}
	if !strings.Contains(out, "\n  - data/common") {
		t.Errorf("unquoted entry should stay unquoted, got:\n%s", out)
	}
}

func TestRewrite_Pure(t *testing.T) {
	first := Rewrite([]byte(sampleConfig), "/srv/data", "tmp/local")
	second := Rewrite([]byte(sampleConfig), "/srv/data", "tmp/local")

	if !bytes.Equal(first, second) {
		t.Error("Rewrite should be a pure function of its inputs")
	}
}

func TestOverrideEntry(t *testing.T) {
	entry, err := OverrideEntry("/tmp/local-overrides.yaml")
	if err != nil {
		t.Fatalf("OverrideEntry failed: %v", err)
	}
	if entry != "tmp/local-overrides" {
		t.Errorf("OverrideEntry = %q, want tmp/local-overrides", entry)
	}
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hiera.yaml")
	dest := filepath.Join(dir, "rewritten.yaml")

	if err := os.WriteFile(src, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RewriteFile(src, dest, "/srv/data", ""); err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	out, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "srv/data/common") {
		t.Errorf("rewritten file should contain prefixed entries, got:\n%s", out)
	}
}

func TestRewriteFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := RewriteFile(filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "out.yaml"), "/data", "")
	if err == nil {
		t.Fatal("expected error for missing source config")
	}
}
