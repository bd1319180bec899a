// Package cli assembles the memdoc command-line application: root command,
// configuration loading, logging, and subcommand wiring.
package cli
