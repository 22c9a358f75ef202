// Package cli defines the Cobra command tree for the layergen CLI. Each file
// registers one top-level command with the root command. Commands delegate to
// internal packages for generation and patching and only handle flag parsing,
// prompting and output formatting.
package cli
