package cmd

import (
	"testing"

	"github.com/hoici/hoidev/internal/config"
	"github.com/hoici/hoidev/internal/errors"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name                       string
		apply, noop, hiera, facter bool
		want                       config.Mode
		wantErr                    bool
	}{
		{"apply", true, false, false, false, config.ModeApply, false},
		{"noop", false, true, false, false, config.ModeNoop, false},
		{"hiera", false, false, true, false, config.ModeHiera, false},
		{"facter", false, false, false, true, config.ModeFacter, false},
		{"none", false, false, false, false, "", true},
		{"two modes", true, true, false, false, "", true},
		{"all modes", true, true, true, true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := resolveMode(tt.apply, tt.noop, tt.hiera, tt.facter)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected argument error")
				}
				if errors.GetExitCode(err) != errors.ExitArgument {
					t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitArgument)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveMode failed: %v", err)
			}
			if mode != tt.want {
				t.Errorf("mode = %q, want %q", mode, tt.want)
			}
		})
	}
}

func TestResolveArgs_ModulesPassThrough(t *testing.T) {
	args, err := resolveArgs(config.ModeApply, []string{"apache", "ntp", "apache"}, "")
	if err != nil {
		t.Fatalf("resolveArgs failed: %v", err)
	}
	if len(args) != 3 || args[0] != "apache" || args[2] != "apache" {
		t.Errorf("module list should pass through unchanged, got %v", args)
	}
}

func TestResolveArgs_HieraRequiresParameters(t *testing.T) {
	_, err := resolveArgs(config.ModeHiera, nil, "")
	if errors.GetExitCode(err) != errors.ExitArgument {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitArgument)
	}
}

func TestResolveArgs_FacterFilterOptional(t *testing.T) {
	args, err := resolveArgs(config.ModeFacter, nil, "")
	if err != nil || len(args) != 0 {
		t.Errorf("facter mode should accept no filter, got %v, %v", args, err)
	}

	args, err = resolveArgs(config.ModeFacter, []string{"machineclass"}, "")
	if err != nil || len(args) != 1 {
		t.Errorf("facter mode should accept one filter, got %v, %v", args, err)
	}

	_, err = resolveArgs(config.ModeFacter, []string{"a", "b"}, "")
	if errors.GetExitCode(err) != errors.ExitArgument {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitArgument)
	}
}

func TestMergeTools(t *testing.T) {
	merged := mergeTools(config.DefaultTools(), config.Tools{Puppet: "puppet-4"})

	if merged.Puppet != "puppet-4" {
		t.Errorf("Puppet = %q, want override", merged.Puppet)
	}
	if merged.Hiera != "hiera" || merged.Facter != "facter" || merged.Sudo != "sudo" {
		t.Errorf("unset tools should keep defaults, got %+v", merged)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "second", "third"); got != "second" {
		t.Errorf("firstNonEmpty = %q, want second", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
