// Package hiera synthesizes the per-run hiera configuration.
//
// The rewriter takes the source hiera.yaml of the selected data source and
// produces a variant suitable for a local run: the datadir is pointed at the
// filesystem root, every hierarchy entry is qualified with the absolute
// source data directory, and an optional override layer is injected ahead of
// the normal hierarchy. Lines unrelated to the datadir declaration and the
// hierarchy list pass through untouched.
//
// The override reader extracts the ordered "variables" mapping from the
// optional local hiera file; those variables become assignments in the
// synthesized manifest and the file itself becomes the injected top layer of
// the lookup hierarchy.
package hiera
