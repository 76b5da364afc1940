// Package engine runs the redaction table against a screenshots directory.
// ProcessFile handles one image; Run drives the whole table, tallies
// results and maintains the idempotence cache. This package is internal;
// external consumers should use the facade in pkg/core.
package engine
