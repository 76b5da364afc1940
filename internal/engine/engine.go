package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/redactyl/shotredact/internal/cache"
	"github.com/redactyl/shotredact/internal/redact"
	"github.com/redactyl/shotredact/internal/types"
)

// Config controls a batch run.
type Config struct {
	Dir     string
	Table   types.Table
	Redact  redact.Options
	Policy  redact.Policy
	Only    string
	DryRun  bool
	NoCache bool

	// Out receives progress lines and per-file notices (missing file,
	// adjusted or skipped box). Warn receives processing errors and cache
	// problems.
	// Both default to io.Discard.
	Out  io.Writer
	Warn io.Writer

	Progress func(types.Result)
}

func (cfg Config) writers() (io.Writer, io.Writer) {
	out, warn := cfg.Out, cfg.Warn
	if out == nil {
		out = io.Discard
	}
	if warn == nil {
		warn = io.Discard
	}
	return out, warn
}

// Run processes every selected entry of cfg.Table in order. A failing
// file never stops the run. The returned error is non-nil only for an
// invalid --only pattern or a cancelled context; in the latter case the
// summary covers the files processed so far.
func Run(ctx context.Context, cfg Config) (types.Summary, error) {
	start := time.Now()
	sum := types.Summary{Dir: cfg.Dir}
	entries, err := Select(cfg.Table, cfg.Only)
	if err != nil {
		return sum, err
	}
	out, warn := cfg.writers()

	var db *cache.DB
	if !cfg.NoCache && !cfg.DryRun {
		d, err := cache.Load(cfg.Dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(warn, "  ⚠️  cache reset: %v\n", err)
		}
		db = &d
	}

	sum.Total = len(entries)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			sum.Total = len(sum.Results)
			sum.Duration = time.Since(start)
			return sum, err
		}
		fmt.Fprintf(out, "\n📸 Processing: %s\n", e.File)
		r := processFile(cfg, e, db)
		sum.Results = append(sum.Results, r)
		if r.OK {
			sum.Succeeded++
		}
		if cfg.Progress != nil {
			cfg.Progress(r)
		}
	}

	if db != nil && len(db.Entries) > 0 {
		if err := cache.Save(cfg.Dir, *db); err != nil {
			fmt.Fprintf(warn, "  ⚠️  cache not saved: %v\n", err)
		}
	}
	sum.Duration = time.Since(start)
	return sum, nil
}

// ProcessFile redacts a single entry and overwrites the file in place.
// It never returns an error: a missing file, undecodable image, rejected
// box or failed write all yield a Result with OK=false. Nothing is
// written unless every redaction of the entry was applied.
func ProcessFile(cfg Config, e types.Entry) types.Result {
	return processFile(cfg, e, nil)
}

func processFile(cfg Config, e types.Entry, db *cache.DB) (res types.Result) {
	start := time.Now()
	res.File = e.File
	defer func() { res.Duration = time.Since(start) }()
	out, warn := cfg.writers()

	fail := func(err error) types.Result {
		fmt.Fprintf(warn, "  ❌ Error processing %s: %v\n", e.File, err)
		res.OK = false
		res.Error = err.Error()
		return res
	}

	path := filepath.Join(cfg.Dir, e.File)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "  ⚠️  File not found: %s\n", e.File)
			res.Reason = "not found"
			return res
		}
		return fail(err)
	}
	var key []byte
	if db != nil {
		key = recipe(cfg, e)
	}
	if db != nil && db.Lookup(e.File, raw, key) {
		fmt.Fprintf(out, "  ⏭  Already redacted: %s\n", e.File)
		res.OK = true
		res.Skipped = true
		res.Reason = "already redacted"
		return res
	}

	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return fail(fmt.Errorf("decode: %w", err))
	}
	img := imaging.Clone(src)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	res.Width, res.Height = w, h
	fmt.Fprintf(out, "  📐 Size: %dx%d\n", w, h)

	for _, r := range e.Redactions {
		label := r.LabelOrDefault()
		box, adjusted, err := redact.Fit(r.Box, w, h, cfg.Policy)
		if adjusted {
			fmt.Fprintf(out, "  ⚠️  Box %s exceeds image size, adjusting...\n", r.Box)
		}
		if errors.Is(err, redact.ErrEmptyBox) {
			fmt.Fprintf(out, "  ⚠️  Skipped %s: nothing left of %s inside %dx%d\n", label, r.Box, w, h)
			continue
		}
		if err != nil {
			return fail(fmt.Errorf("%s: %w", label, err))
		}
		redact.Apply(img, box, cfg.Redact)
		redact.DrawPlaceholder(img, box, r.PlaceholderOrDefault(), cfg.Redact)
		fmt.Fprintf(out, "  ✓ Redacted: %s\n", label)
		res.Applied = append(res.Applied, label)
	}

	if cfg.DryRun {
		fmt.Fprintf(out, "  🔍 Dry run: %s not saved\n", e.File)
		res.OK = true
		return res
	}
	data, err := encode(img, path)
	if err != nil {
		return fail(err)
	}
	if err := writeInPlace(path, data); err != nil {
		return fail(err)
	}
	if db != nil {
		db.Record(e.File, data, key)
	}
	fmt.Fprintf(out, "  💾 Saved: %s\n", e.File)
	res.OK = true
	return res
}

// recipe identifies everything that decides how e is painted, so a cached
// file is only skipped when both its bytes and its redactions are unchanged.
func recipe(cfg Config, e types.Entry) []byte {
	b, err := json.Marshal(struct {
		Entry  types.Entry
		Redact redact.Options
		Policy redact.Policy
	}{e, cfg.Redact, cfg.Policy})
	if err != nil {
		return nil
	}
	return b
}

func encode(img image.Image, path string) ([]byte, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// writeInPlace overwrites path keeping its permission bits.
func writeInPlace(path string, data []byte) error {
	mode := os.FileMode(0644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
