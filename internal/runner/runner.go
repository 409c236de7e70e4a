package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/hoici/hoidev/internal/config"
	"github.com/hoici/hoidev/internal/errors"
	"github.com/hoici/hoidev/internal/hiera"
	"github.com/hoici/hoidev/internal/logging"
	"github.com/hoici/hoidev/internal/manifest"
	"github.com/hoici/hoidev/internal/system"
)

// Runner executes harness runs against a command executor.
type Runner struct {
	exec system.CommandExecutor
}

// New creates a Runner. A nil executor selects the real OS executor.
func New(exec system.CommandExecutor) *Runner {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Runner{exec: exec}
}

// Run performs one run for the given request.
func (r *Runner) Run(ctx context.Context, req config.RunRequest) error {
	switch req.Mode {
	case config.ModeApply, config.ModeNoop:
		return r.runPuppet(ctx, req)
	case config.ModeHiera:
		return r.runHieraLookup(ctx, req)
	case config.ModeFacter:
		return r.runFacterQuery(ctx, req)
	default:
		return errors.ArgumentError("unknown mode %q", req.Mode)
	}
}

// preflight verifies every required input before any build directory is
// created.
func (r *Runner) preflight(req config.RunRequest) error {
	if req.LocalHieraFile != "" {
		if _, err := os.Stat(req.LocalHieraFile); err != nil {
			return errors.InputError("local hiera file not found: %s", req.LocalHieraFile)
		}
	}
	if _, err := os.Stat(req.HieraConfig); err != nil {
		return errors.InputError("hiera config not found: %s", req.HieraConfig)
	}
	if info, err := os.Stat(req.HieraDataDir); err != nil || !info.IsDir() {
		return errors.InputError("hiera data directory not found: %s", req.HieraDataDir)
	}
	return nil
}

// synthesizeHieraConfig rewrites the source hiera configuration into the
// build directory, injecting the local hiera file as the top lookup layer
// when one was supplied.
func (r *Runner) synthesizeHieraConfig(req config.RunRequest, bd *BuildDir) error {
	dataDir, err := filepath.Abs(req.HieraDataDir)
	if err != nil {
		return errors.Wrap(errors.ExitInput, "cannot resolve hiera data directory", err)
	}

	overrideEntry := ""
	if req.LocalHieraFile != "" {
		overrideEntry, err = hiera.OverrideEntry(req.LocalHieraFile)
		if err != nil {
			return errors.Wrap(errors.ExitInput, "cannot resolve local hiera file", err)
		}
	}

	if err := hiera.RewriteFile(req.HieraConfig, bd.HieraConfig(), dataDir, overrideEntry); err != nil {
		return errors.Wrap(errors.ExitInput, "cannot rewrite hiera config", err)
	}
	return nil
}

func (r *Runner) runPuppet(ctx context.Context, req config.RunRequest) error {
	if err := r.preflight(req); err != nil {
		return err
	}

	bd, err := NewBuildDir()
	if err != nil {
		return errors.Wrap(errors.ExitPrecondition, "cannot create build dir", err)
	}
	defer bd.Remove()

	if err := r.synthesizeHieraConfig(req, bd); err != nil {
		return err
	}

	vars, err := hiera.ReadVariables(req.LocalHieraFile)
	if err != nil {
		return err
	}

	manifestPath, err := manifest.Write(bd.Path, vars, req.Args)
	if err != nil {
		return errors.Wrap(errors.ExitPrecondition, "cannot write manifest", err)
	}

	args := []string{
		req.Tools.Puppet, "apply",
		"--show_diff",
		"--hiera_config", bd.HieraConfig(),
		"--environment", "local",
		"--modulepath", req.ModuleDir,
	}
	if req.Debug {
		args = append(args, "--debug")
	}
	if req.Mode == config.ModeNoop {
		args = append(args, "--noop")
	}
	args = append(args, manifestPath)

	logging.Debug("running puppet apply",
		"command", shellquote.Join(append([]string{req.Tools.Sudo}, args...)...))

	if err := r.exec.RunInteractive(ctx, req.Tools.Sudo, args...); err != nil {
		return errors.RunError("puppet apply", err)
	}
	return nil
}

func (r *Runner) runHieraLookup(ctx context.Context, req config.RunRequest) error {
	if err := r.preflight(req); err != nil {
		return err
	}

	bd, err := NewBuildDir()
	if err != nil {
		return errors.Wrap(errors.ExitPrecondition, "cannot create build dir", err)
	}
	defer bd.Remove()

	if err := r.synthesizeHieraConfig(req, bd); err != nil {
		return err
	}

	logging.Debug("gathering facts", "command", req.Tools.Facter+" --yaml")
	facts, err := r.exec.Output(ctx, req.Tools.Facter, "--yaml")
	if err != nil {
		return errors.RunError("facter", err)
	}
	if err := os.WriteFile(bd.FactsFile(), facts, 0o644); err != nil {
		return errors.Wrap(errors.ExitRun, "cannot write facts file", err)
	}

	args := []string{"-c", bd.HieraConfig(), "-y", bd.FactsFile()}
	if req.Debug {
		args = append(args, "-d")
	}
	args = append(args, req.Args...)

	logging.Debug("running hiera lookup",
		"command", shellquote.Join(append([]string{req.Tools.Hiera}, args...)...))

	if err := r.exec.RunInteractive(ctx, req.Tools.Hiera, args...); err != nil {
		return errors.RunError("hiera", err)
	}
	return nil
}

func (r *Runner) runFacterQuery(ctx context.Context, req config.RunRequest) error {
	dirs, err := DiscoverPluginDirs(req.ModuleDir)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		logging.UserWarning("no facter plugin directories found under %s", req.ModuleDir)
	}

	env := []string{"FACTERLIB=" + joinPluginPath(dirs)}

	var args []string
	if req.Debug {
		args = append(args, "--debug", "--timing")
	}

	logging.Debug("running facter query",
		"command", shellquote.Join(append([]string{req.Tools.Facter}, args...)...),
		"facterlib", env[0])

	out, err := r.exec.OutputWithEnv(ctx, env, req.Tools.Facter, args...)
	if err != nil {
		return errors.RunError("facter", err)
	}

	matches, err := filterFacts(out, req.Args)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return errors.RunErrorf("fact not found")
	}

	for _, line := range matches {
		fmt.Println(line)
	}
	return nil
}
