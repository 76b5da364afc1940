// Package shotredact provides the command-line interface for shotredact.
// It wires the run, table, history, config and version subcommands to the
// redaction engine, resolves flags against config files and the
// environment, and renders results.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/shotredact/cmd/shotredact"
//	func main() { shotredact.Execute() }
package shotredact
