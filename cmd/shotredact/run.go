package shotredact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redactyl/shotredact/internal/audit"
	"github.com/redactyl/shotredact/internal/config"
	"github.com/redactyl/shotredact/internal/engine"
	"github.com/redactyl/shotredact/internal/redact"
	"github.com/redactyl/shotredact/internal/report"
	"github.com/redactyl/shotredact/internal/table"
	"github.com/redactyl/shotredact/internal/types"
	"github.com/redactyl/shotredact/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagDir         string
	flagBlur        bool
	flagBlurRadius  float64
	flagFillColor   string
	flagTextColor   string
	flagCentering   string
	flagBoxPolicy   string
	flagOnly        string
	flagDryRun      bool
	flagNoCache     bool
	flagNoAudit     bool
	flagFailOnError bool
	flagDetails     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply the redaction table to the screenshots directory",
		Long: `Apply the redaction table to the screenshots directory, overwriting each image in place.

Progress lines, missing-file notices and box adjustments are written to stdout.
Processing errors (undecodable image, rejected box, failed save) and cache
warnings are written to stderr.`,
		Args:  cobra.NoArgs,
		RunE:  runRedact,
	}
	addRunFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagDir, "dir", "d", "", "screenshots directory (default \"screenshots\")")
	cmd.Flags().BoolVar(&flagBlur, "blur", false, "blur regions instead of painting solid bars")
	cmd.Flags().Float64Var(&flagBlurRadius, "blur-radius", 0, "Gaussian blur sigma (default 30)")
	cmd.Flags().StringVar(&flagFillColor, "fill-color", "", "bar color as #rrggbb (default #282828)")
	cmd.Flags().StringVar(&flagTextColor, "text-color", "", "placeholder color as #rrggbb (default #969696)")
	cmd.Flags().StringVar(&flagCentering, "centering", "", "placeholder centering: measured | fixed")
	cmd.Flags().StringVar(&flagBoxPolicy, "box-policy", "", "out-of-bounds boxes: clamp | coerce | strict")
	cmd.Flags().StringVar(&flagOnly, "only", "", "comma-separated globs selecting table entries (prefix ! to exclude)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "apply redactions in memory without saving")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "reprocess files already redacted by a previous run")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append this run to the audit log")
	cmd.Flags().BoolVar(&flagFailOnError, "fail-on-error", false, "exit 1 when any screenshot could not be processed")
	cmd.Flags().BoolVar(&flagDetails, "details", false, "print a per-file table after the summary")
}

// settings is the fully resolved configuration for a run.
type settings struct {
	engine  engine.Config
	noColor bool
	audit   bool
}

func runRedact(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if flagSelfUpdate {
		if err := selfUpdate(); err != nil {
			return fmt.Errorf("self-update: %w", err)
		}
		fmt.Fprintln(stderr, "updated to latest; re-run command")
		return nil
	}

	s, err := resolveSettings()
	if err != nil {
		return err
	}
	if !flagJSON && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(ctx, version, false); newer {
			fmt.Fprintf(stderr, "(new version available: v%s)  run 'shotredact --self-update' to upgrade\n", latest)
		}
	}

	opts := report.PrintOptions{NoColor: s.noColor || !colorFor(stdout), Details: flagDetails}
	cfg := s.engine
	cfg.Out, cfg.Warn = stdout, stderr
	if flagJSON {
		cfg.Out = io.Discard
	} else {
		abs, _ := filepath.Abs(cfg.Dir)
		report.PrintBanner(stdout, abs, opts)
	}

	sum, runErr := engine.Run(ctx, cfg)
	if sum.Total == 0 && runErr != nil {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintln(stderr, "interrupted:", runErr)
	}

	if flagJSON {
		if err := report.WriteJSON(stdout, sum); err != nil {
			return err
		}
	} else {
		report.PrintSummary(stdout, sum, opts)
	}

	if s.audit && !cfg.DryRun {
		if _, err := os.Stat(cfg.Dir); err == nil {
			rec := audit.CreateRunRecord(sum, string(cfg.Redact.Mode), cfg.DryRun)
			if err := audit.NewAuditLog(cfg.Dir).LogRun(rec); err != nil {
				fmt.Fprintln(stderr, "audit warning:", err)
			}
		}
	}

	if flagFailOnError && sum.Succeeded < sum.Total {
		os.Exit(1)
	}
	return nil
}

// resolveSettings merges flags, the explicit --config file, local and
// global config files and the environment, in that order of precedence.
func resolveSettings() (settings, error) {
	var s settings
	cwd, _ := os.Getwd()

	var xcfg, lcfg, gcfg config.FileConfig
	if flagConfig != "" {
		c, err := config.LoadFile(flagConfig)
		if err != nil {
			return s, err
		}
		xcfg = c
	}
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	} else if !isNoConfig(err) {
		return s, err
	}
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	} else if !isNoConfig(err) {
		return s, err
	}
	ecfg, err := config.LoadEnv(cwd)
	if err != nil {
		return s, fmt.Errorf("environment: %w", err)
	}

	modeCLI := ""
	if flagBlur {
		modeCLI = string(redact.ModeBlur)
	}
	mode, err := redact.ParseMode(pickString(modeCLI, xcfg.Mode, lcfg.Mode, gcfg.Mode, ecfg.Mode))
	if err != nil {
		return s, err
	}
	centering, err := redact.ParseCentering(pickString(flagCentering, xcfg.Centering, lcfg.Centering, gcfg.Centering))
	if err != nil {
		return s, err
	}
	policy, err := redact.ParsePolicy(pickString(flagBoxPolicy, xcfg.BoxPolicy, lcfg.BoxPolicy, gcfg.BoxPolicy, ecfg.BoxPolicy))
	if err != nil {
		return s, err
	}

	ropts := redact.DefaultOptions()
	ropts.Mode = mode
	ropts.Centering = centering
	if r := pickFloat(flagBlurRadius, xcfg.BlurRadius, lcfg.BlurRadius, gcfg.BlurRadius, ecfg.BlurRadius); r > 0 {
		ropts.BlurRadius = r
	} else if r < 0 {
		return s, fmt.Errorf("--blur-radius must be > 0")
	}
	if c := pickString(flagFillColor, xcfg.FillColor, lcfg.FillColor, gcfg.FillColor); c != "" {
		if ropts.FillColor, err = config.ParseColor(c); err != nil {
			return s, err
		}
	}
	if c := pickString(flagTextColor, xcfg.TextColor, lcfg.TextColor, gcfg.TextColor); c != "" {
		if ropts.TextColor, err = config.ParseColor(c); err != nil {
			return s, err
		}
	}

	dir := pickString(flagDir, xcfg.Dir, lcfg.Dir, gcfg.Dir, ecfg.Dir)
	if dir == "" {
		dir = "screenshots"
	}

	s.engine = engine.Config{
		Dir:     dir,
		Table:   pickTable(xcfg.Redactions, lcfg.Redactions, gcfg.Redactions),
		Redact:  ropts,
		Policy:  policy,
		Only:    pickString(flagOnly, xcfg.Only, lcfg.Only, gcfg.Only),
		DryRun:  flagDryRun,
		NoCache: flagNoCache,
	}
	s.noColor = pickBool(flagNoColor, xcfg.NoColor, lcfg.NoColor, gcfg.NoColor)
	s.audit = !flagNoAudit
	if a := firstBool(xcfg.Audit, lcfg.Audit, gcfg.Audit); a != nil && !*a {
		s.audit = false
	}
	return s, nil
}

func pickTable(layers ...types.Table) types.Table {
	for _, t := range layers {
		if len(t) > 0 {
			return t
		}
	}
	return table.Default()
}

func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && report.ColorEnabled(f, false)
}
