// Package core provides a small, stable facade over shotredact's internal
// engine so other tools can run a redaction table without importing
// internal packages.
//
// Example:
//
//	cfg := core.DefaultConfig("screenshots")
//	sum, err := core.Run(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalSummary(os.Stdout, sum)
package core
