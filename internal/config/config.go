package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/hoici/hoidev/internal/errors"
	"github.com/hoici/hoidev/internal/logging"
)

// Mode selects what a run does.
type Mode string

const (
	ModeApply  Mode = "apply"
	ModeNoop   Mode = "noop"
	ModeHiera  Mode = "hiera"
	ModeFacter Mode = "facter"
)

// System-installed data locations, selected by --hoici.
const (
	SystemModuleDir   = "/etc/puppet/modules"
	SystemHieraConfig = "/etc/puppet/hiera.yaml"
	SystemHieraData   = "/etc/puppet/hieradata"
)

// Checkout-relative names inside the hoi and hoi-env repositories.
const (
	checkoutModuleDir   = "modules"
	checkoutHieraConfig = "hiera.yaml"
	checkoutHieraData   = "hieradata"
)

// RunRequest is the immutable description of one harness run, constructed
// once from the parsed command line and passed explicitly to every component.
type RunRequest struct {
	Mode Mode

	// Args holds the module names (apply/noop), the lookup parameters
	// (hiera), or the optional fact filter regex (facter), in the order
	// they were given.
	Args []string

	Debug bool

	// Locations of the selected data source.
	ModuleDir    string
	HieraConfig  string
	HieraDataDir string

	// LocalHieraFile is the optional override data file; empty when unset.
	LocalHieraFile string

	Tools Tools
}

// Tools names the external binaries a run invokes.
type Tools struct {
	Puppet string `toml:"puppet"`
	Hiera  string `toml:"hiera"`
	Facter string `toml:"facter"`
	Sudo   string `toml:"sudo"`
}

// DefaultTools returns the standard binary names.
func DefaultTools() Tools {
	return Tools{
		Puppet: "puppet",
		Hiera:  "hiera",
		Facter: "facter",
		Sudo:   "sudo",
	}
}

// FileConfig mirrors the optional defaults file at
// ~/.config/hoidev/config.toml.
type FileConfig struct {
	GitHoiDir    string `toml:"githoidir"`
	GitHoiEnvDir string `toml:"githoienvdir"`
	Tools        Tools  `toml:"tools"`
}

// DefaultConfigPath returns the defaults file location for the current user.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hoidev", "config.toml")
}

// LoadFileConfig reads the TOML defaults file. A missing file yields the
// zero value; a malformed file is a configuration error.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	if path == "" {
		return fc, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fc, nil
	}

	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fc, errors.ConfigError("cannot parse %s: %v", path, err)
	}

	logging.Debug("loaded defaults file", "path", path)
	return fc, nil
}

// DefaultCheckoutRoots returns the conventional checkout locations under the
// user's home directory.
func DefaultCheckoutRoots() (gitHoiDir, gitHoiEnvDir string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	return filepath.Join(home, "git", "hoi"), filepath.Join(home, "git", "hoi-env")
}

// Locations holds the resolved data-source paths for one run.
type Locations struct {
	ModuleDir    string
	HieraConfig  string
	HieraDataDir string
}

// ResolveLocations picks between the system-installed data locations and the
// developer checkouts, and verifies the selected roots exist.
func ResolveLocations(hoici bool, gitHoiDir, gitHoiEnvDir string) (Locations, error) {
	if hoici {
		loc := Locations{
			ModuleDir:    SystemModuleDir,
			HieraConfig:  SystemHieraConfig,
			HieraDataDir: SystemHieraData,
		}
		if !dirExists(loc.ModuleDir) {
			return Locations{}, errors.ConfigError("system module directory not found: %s", loc.ModuleDir)
		}
		return loc, nil
	}

	if !dirExists(gitHoiDir) {
		return Locations{}, errors.ConfigError("hoi checkout not found: %s", gitHoiDir)
	}
	if !dirExists(gitHoiEnvDir) {
		return Locations{}, errors.ConfigError("hoi-env checkout not found: %s", gitHoiEnvDir)
	}

	// The checkout roots come from flags or the defaults file; resolve the
	// fixed names underneath them without trusting relative components.
	moduleDir, err := securejoin.SecureJoin(gitHoiDir, checkoutModuleDir)
	if err != nil {
		return Locations{}, errors.ConfigError("cannot resolve module directory under %s: %v", gitHoiDir, err)
	}
	hieraConfig, err := securejoin.SecureJoin(gitHoiEnvDir, checkoutHieraConfig)
	if err != nil {
		return Locations{}, errors.ConfigError("cannot resolve hiera config under %s: %v", gitHoiEnvDir, err)
	}
	hieraData, err := securejoin.SecureJoin(gitHoiEnvDir, checkoutHieraData)
	if err != nil {
		return Locations{}, errors.ConfigError("cannot resolve hieradata under %s: %v", gitHoiEnvDir, err)
	}

	return Locations{
		ModuleDir:    moduleDir,
		HieraConfig:  hieraConfig,
		HieraDataDir: hieraData,
	}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListModules returns the module names available under the module directory,
// in directory order. Non-directories and hidden entries are skipped.
func ListModules(moduleDir string) ([]string, error) {
	entries, err := os.ReadDir(moduleDir)
	if err != nil {
		return nil, errors.ConfigError("cannot list modules in %s: %v", moduleDir, err)
	}

	var modules []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		modules = append(modules, entry.Name())
	}
	return modules, nil
}
