// Package main hosts the notarycheck CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, then hands off to the
// internal packages: `check` polls the notary service for the pending
// submission, `doctor` reports environment readiness, and `config` scaffolds
// and validates the TOML file. Marker lines and JSON go to stdout; logs and
// raw tool output go to stderr.
package main
