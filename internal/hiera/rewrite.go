package hiera

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hoici/hoidev/internal/logging"
)

// Rewrite produces the run-local variant of a hiera configuration.
//
// The datadir declaration is pointed at the filesystem root, each hierarchy
// entry is prefixed with dataDir (its single leading separator stripped so
// the root datadir completes it to an absolute path), and when overrideEntry
// is non-empty it is injected as the new first, highest-priority entry.
// Every other line is passed through byte-for-byte. The hierarchy block ends
// at the first non-entry line, blank lines and comments included.
//
// Rewrite is a pure function of its inputs.
func Rewrite(src []byte, dataDir, overrideEntry string) []byte {
	prefix := trimOneLeadingSeparator(dataDir)

	inHierarchy := false
	firstEntry := false

	lines := strings.Split(string(src), "\n")
	out := make([]string, 0, len(lines)+1)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, ":datadir"):
			out = append(out, indentOf(line)+":datadir: /")

		case strings.HasPrefix(line, ":hierarchy"):
			out = append(out, line)
			inHierarchy = true
			firstEntry = true

		case inHierarchy && strings.HasPrefix(trimmed, "- "):
			indent := indentOf(line)
			value, quote := parseEntry(trimmed)

			if firstEntry && overrideEntry != "" {
				out = append(out, indent+"- "+renderValue(overrideEntry, quote))
			}
			firstEntry = false

			out = append(out, indent+"- "+renderValue(prefix+"/"+value, quote))

		default:
			inHierarchy = false
			out = append(out, line)
		}
	}

	return []byte(strings.Join(out, "\n"))
}

// RewriteFile reads the source hiera configuration and writes its rewritten
// form to destPath.
func RewriteFile(srcPath, destPath, dataDir, overrideEntry string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	logging.Debug("rewriting hiera config",
		"source", srcPath,
		"dest", destPath,
		"datadir", dataDir,
		"override", overrideEntry)

	return os.WriteFile(destPath, Rewrite(src, dataDir, overrideEntry), 0o644)
}

// OverrideEntry converts a local hiera file path into its hierarchy entry
// form: absolute, extension stripped, one leading separator removed. The
// rewritten config's root datadir completes it back to the original path.
func OverrideEntry(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return trimOneLeadingSeparator(abs), nil
}

// parseEntry splits a trimmed "- value" line into its value and the quote
// character wrapping it, if any.
func parseEntry(trimmed string) (value string, quote byte) {
	value = strings.TrimSpace(trimmed[len("- "):])
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		quote = value[0]
		value = value[1 : len(value)-1]
	}
	return value, quote
}

func renderValue(value string, quote byte) string {
	if quote == 0 {
		return value
	}
	return string(quote) + value + string(quote)
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func trimOneLeadingSeparator(path string) string {
	after, _ := strings.CutPrefix(path, "/")
	return after
}
