package runner

import (
	"os"
	"path/filepath"

	"github.com/hoici/hoidev/internal/logging"
)

// BuildDir is the ephemeral working directory of one run. It is owned
// exclusively by the runner and never reused across runs.
type BuildDir struct {
	Path string
}

// NewBuildDir allocates a fresh build directory.
func NewBuildDir() (*BuildDir, error) {
	path, err := os.MkdirTemp("", "hoidev-")
	if err != nil {
		return nil, err
	}
	logging.Debug("created build dir", "path", path)
	return &BuildDir{Path: path}, nil
}

// HieraConfig returns the path of the rewritten hiera configuration inside
// the build directory.
func (b *BuildDir) HieraConfig() string {
	return filepath.Join(b.Path, "hiera.yaml")
}

// FactsFile returns the path of the captured facts file inside the build
// directory.
func (b *BuildDir) FactsFile() string {
	return filepath.Join(b.Path, "facts.yaml")
}

// Remove deletes the build directory. A removal failure is reported but
// never masks the run's primary error, so Remove is safe to defer.
func (b *BuildDir) Remove() {
	if err := os.RemoveAll(b.Path); err != nil {
		logging.Warn("failed to remove build dir", "path", b.Path, "error", err)
		return
	}
	logging.Debug("removed build dir", "path", b.Path)
}
