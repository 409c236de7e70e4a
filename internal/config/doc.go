// Package config resolves where hoidev reads its Puppet modules and Hiera
// data from, and carries the immutable per-run request.
//
// Two data sources exist: the developer checkouts (a hoi module checkout and
// a hoi-env hierarchical-data checkout, overridable per flag) and the fixed
// system-installed locations under /etc/puppet selected by --hoici. The
// selected roots must exist before a run starts.
//
// An optional TOML file at ~/.config/hoidev/config.toml supplies defaults
// for the checkout roots and the external tool binaries. Command-line flags
// take precedence over file values.
package config
