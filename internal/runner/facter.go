package runner

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hoici/hoidev/internal/errors"
	"github.com/hoici/hoidev/internal/logging"
)

// Plugin directories live at modules/<module>/lib/facter or one level
// deeper; the walk stops below that.
const (
	pluginDirName  = "facter"
	minPluginDepth = 3
	maxPluginDepth = 4
)

// DiscoverPluginDirs finds directories named "facter" between three and four
// levels below the module base path.
func DiscoverPluginDirs(baseDir string) ([]string, error) {
	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		return nil, errors.InputError("module directory not found: %s", baseDir)
	}

	var dirs []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() || path == baseDir {
			return nil
		}

		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))

		if d.Name() == pluginDirName && depth >= minPluginDepth && depth <= maxPluginDepth {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		if depth >= maxPluginDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ExitInput, "cannot scan module directory", err)
	}

	logging.Debug("discovered facter plugin dirs", "count", len(dirs))
	return dirs, nil
}

func joinPluginPath(dirs []string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

// filterFacts keeps the facter output lines matching the caller's regex.
// No filter argument means match-all.
func filterFacts(output []byte, filterArgs []string) ([]string, error) {
	pattern := ".*"
	if len(filterArgs) > 0 && filterArgs[0] != "" {
		pattern = filterArgs[0]
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.ArgumentError("invalid fact filter %q: %v", pattern, err)
	}

	var matches []string
	for _, line := range strings.Split(strings.TrimRight(string(output), "\n"), "\n") {
		if line == "" {
			continue
		}
		if re.MatchString(line) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}
