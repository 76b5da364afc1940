package shotredact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redactyl/shotredact/internal/config"
	"github.com/redactyl/shotredact/internal/redact"
	"github.com/redactyl/shotredact/internal/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput    string
	cfgForce     bool
	cfgNoTable   bool
	cfgBlur      bool
	cfgDir       string
	cfgBoxPolicy string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .shotredact.yml with the default options and redaction table",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".shotredact.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgNoTable, "no-table", false, "omit the redaction table (keep the built-in one)")
	initCmd.Flags().BoolVar(&cfgBlur, "blur", false, "default to blur mode")
	initCmd.Flags().StringVar(&cfgDir, "dir", "screenshots", "screenshots directory")
	initCmd.Flags().StringVar(&cfgBoxPolicy, "box-policy", string(redact.PolicyClamp), "out-of-bounds boxes: clamp | coerce | strict")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the global config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := config.Dir()
			if dir == "" {
				return fmt.Errorf("cannot determine config directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, "config.yml"))
			return nil
		},
	}
	cfgCmd.AddCommand(pathCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	if _, err := redact.ParsePolicy(cfgBoxPolicy); err != nil {
		return err
	}

	d := redact.DefaultOptions()
	mode := string(redact.ModeFill)
	if cfgBlur {
		mode = string(redact.ModeBlur)
	}
	fc := config.FileConfig{
		Dir:        strPtr(cfgDir),
		Mode:       strPtr(mode),
		BlurRadius: floatPtr(d.BlurRadius),
		FillColor:  strPtr(config.FormatColor(d.FillColor)),
		TextColor:  strPtr(config.FormatColor(d.TextColor)),
		Centering:  strPtr(string(d.Centering)),
		BoxPolicy:  strPtr(cfgBoxPolicy),
		Audit:      boolPtr(true),
	}
	if !cfgNoTable {
		fc.Redactions = table.Default()
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
