package cmd

import (
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hoici/hoidev/internal/config"
	"github.com/hoici/hoidev/internal/errors"
	"github.com/hoici/hoidev/internal/logging"
	"github.com/hoici/hoidev/internal/runner"
	"github.com/hoici/hoidev/internal/tui"
)

var (
	applyMode  bool
	noopMode   bool
	hieraMode  bool
	facterMode bool

	localHieraFile string
	debug          bool
	jsonOutput     bool
	hoici          bool
	gitHoiDir      string
	gitHoiEnvDir   string
)

var rootCmd = &cobra.Command{
	Use:   "hoidev [flags] [modules | parameters | fact-regex]",
	Short: "Run Puppet modules and Hiera lookups against the local system",
	Long: `hoidev exercises Puppet modules and their Hiera data against this machine
without a puppetmaster. Each run builds an ephemeral environment - a
rewritten hiera config, a generated manifest including the requested
modules, and optional variable overrides - and hands it to the external
puppet, hiera, or facter tool.

Examples:
  hoidev --apply apache ntp          apply two modules
  hoidev --noop apache               dry-run one module
  hoidev --hiera ntp::servers        look up a hiera parameter
  hoidev --facter machineclass       query facts, filtered by regex
  hoidev --apply --localhierafile=local.yaml apache
                                     apply with forced hiera values`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(debug, jsonOutput, os.Stderr)
	},
	RunE: runRoot,
}

// Execute runs the CLI. Errors without an explicit category are argument
// errors from flag parsing.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var he *errors.HoiError
	if !stderrors.As(err, &he) {
		return errors.Wrap(errors.ExitArgument, "invalid invocation", err)
	}
	return err
}

func init() {
	rootCmd.Flags().BoolVar(&applyMode, "apply", false, "Apply the named modules")
	rootCmd.Flags().BoolVar(&noopMode, "noop", false, "Apply the named modules in no-op mode")
	rootCmd.Flags().BoolVar(&hieraMode, "hiera", false, "Look up the named hiera parameters")
	rootCmd.Flags().BoolVar(&facterMode, "facter", false, "Query facts, optionally filtered by a regex")

	rootCmd.Flags().StringVar(&localHieraFile, "localhierafile", "", "Hiera override file injected as the highest lookup layer")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug output, here and in the external tools")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.Flags().BoolVar(&hoici, "hoici", false, "Use the system-installed data locations instead of the checkouts")
	rootCmd.Flags().StringVar(&gitHoiDir, "githoidir", "", "Module checkout root (default ~/git/hoi)")
	rootCmd.Flags().StringVar(&gitHoiEnvDir, "githoienvdir", "", "Hiera data checkout root (default ~/git/hoi-env)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func runRoot(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	// Cancel the external tool on interrupt; the deferred build dir
	// cleanup still unwinds.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runner.New(nil).Run(ctx, req)
}

// buildRequest turns flags and positional arguments into the immutable
// per-run request.
func buildRequest(args []string) (config.RunRequest, error) {
	mode, err := resolveMode(applyMode, noopMode, hieraMode, facterMode)
	if err != nil {
		return config.RunRequest{}, err
	}

	fileCfg, err := config.LoadFileConfig(config.DefaultConfigPath())
	if err != nil {
		return config.RunRequest{}, err
	}

	hoiDir, envDir := checkoutRoots(fileCfg)
	loc, err := config.ResolveLocations(hoici, hoiDir, envDir)
	if err != nil {
		return config.RunRequest{}, err
	}

	args, err = resolveArgs(mode, args, loc.ModuleDir)
	if err != nil {
		return config.RunRequest{}, err
	}

	return config.RunRequest{
		Mode:           mode,
		Args:           args,
		Debug:          debug,
		ModuleDir:      loc.ModuleDir,
		HieraConfig:    loc.HieraConfig,
		HieraDataDir:   loc.HieraDataDir,
		LocalHieraFile: localHieraFile,
		Tools:          mergeTools(config.DefaultTools(), fileCfg.Tools),
	}, nil
}

// resolveMode requires exactly one of the four mode flags.
func resolveMode(apply, noop, hiera, facter bool) (config.Mode, error) {
	var mode config.Mode
	count := 0
	for _, m := range []struct {
		mode config.Mode
		set  bool
	}{
		{config.ModeApply, apply},
		{config.ModeNoop, noop},
		{config.ModeHiera, hiera},
		{config.ModeFacter, facter},
	} {
		if m.set {
			mode = m.mode
			count++
		}
	}

	if count != 1 {
		return "", errors.ArgumentError("exactly one of --apply, --noop, --hiera, --facter is required")
	}
	return mode, nil
}

// resolveArgs validates the positional arguments for a mode. An interactive
// module picker fills in a missing module list when running on a terminal.
func resolveArgs(mode config.Mode, args []string, moduleDir string) ([]string, error) {
	switch mode {
	case config.ModeApply, config.ModeNoop:
		if len(args) > 0 {
			return args, nil
		}
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return nil, errors.ArgumentError("at least one module is required")
		}

		modules, err := config.ListModules(moduleDir)
		if err != nil {
			return nil, err
		}
		choice, err := tui.RunModulePicker(moduleDir, modules)
		if err != nil {
			return nil, errors.Wrap(errors.ExitPrecondition, "module picker failed", err)
		}
		if choice == "" {
			return nil, errors.ArgumentError("no module selected")
		}
		return []string{choice}, nil

	case config.ModeHiera:
		if len(args) == 0 {
			return nil, errors.ArgumentError("at least one lookup parameter is required")
		}
		return args, nil

	case config.ModeFacter:
		if len(args) > 1 {
			return nil, errors.ArgumentError("--facter takes at most one filter regex")
		}
		return args, nil
	}

	return args, nil
}

// checkoutRoots resolves the checkout locations: flags beat the defaults
// file, which beats ~/git/hoi and ~/git/hoi-env.
func checkoutRoots(fileCfg config.FileConfig) (string, string) {
	defHoi, defEnv := config.DefaultCheckoutRoots()

	hoiDir := firstNonEmpty(gitHoiDir, fileCfg.GitHoiDir, defHoi)
	envDir := firstNonEmpty(gitHoiEnvDir, fileCfg.GitHoiEnvDir, defEnv)
	return hoiDir, envDir
}

func mergeTools(base, over config.Tools) config.Tools {
	if over.Puppet != "" {
		base.Puppet = over.Puppet
	}
	if over.Hiera != "" {
		base.Hiera = over.Hiera
	}
	if over.Facter != "" {
		base.Facter = over.Facter
	}
	if over.Sudo != "" {
		base.Sudo = over.Sudo
	}
	return base
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
