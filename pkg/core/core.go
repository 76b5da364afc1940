package core

import (
	"context"

	"github.com/redactyl/shotredact/internal/engine"
	"github.com/redactyl/shotredact/internal/redact"
	"github.com/redactyl/shotredact/internal/table"
	"github.com/redactyl/shotredact/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Config    = engine.Config
	Box       = types.Box
	Redaction = types.Redaction
	Entry     = types.Entry
	Table     = types.Table
	Result    = types.Result
	Summary   = types.Summary
)

// DefaultConfig returns the built-in table with solid fill, clamp policy
// and the cache enabled, rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:    dir,
		Table:  table.Default(),
		Redact: redact.DefaultOptions(),
		Policy: redact.PolicyClamp,
	}
}

// Run processes the configured table.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	return engine.Run(ctx, cfg)
}

// ProcessFile redacts a single entry in place.
func ProcessFile(cfg Config, e Entry) Result {
	return engine.ProcessFile(cfg, e)
}
