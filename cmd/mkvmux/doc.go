// Package main hosts the mkvmux CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into mkvmerge
// runs: container identification, mux command synthesis, split configuration,
// dependency checks, and configuration scaffolding. It centralizes
// configuration resolution, logging setup, and client construction so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
