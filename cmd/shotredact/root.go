package shotredact

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagConfig        string
	flagJSON          bool
	flagNoColor       bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the shotredact CLI. Without a
// subcommand it behaves like "run".
var rootCmd = &cobra.Command{
	Use:           "shotredact",
	Short:         "Redact secrets from screenshots",
	Long:          "shotredact paints over API keys, usernames and project IDs in a directory of screenshots using a fixed table of boxes, overwriting the images in place.\n\nProgress and per-file notices go to stdout; processing errors and cache warnings go to stderr.",
	Args:          cobra.NoArgs,
	RunE:          runRedact,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the shotredact CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (overrides local and global config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update shotredact to the latest release")
	addRunFlags(rootCmd)
}
