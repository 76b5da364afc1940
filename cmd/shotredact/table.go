package shotredact

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/redactyl/shotredact/internal/engine"
	"github.com/redactyl/shotredact/internal/report"
	"github.com/redactyl/shotredact/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagTableYAML     bool
	flagTableUnlisted bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the effective redaction table",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}
	cmd.Flags().BoolVar(&flagTableYAML, "yaml", false, "print the table as YAML (the config file format)")
	cmd.Flags().BoolVar(&flagTableUnlisted, "unlisted", false, "list images in the screenshots directory that have no entry")
	addRunFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	tbl, err := engine.Select(s.engine.Table, s.engine.Only)
	if err != nil {
		return err
	}

	switch {
	case flagTableUnlisted:
		files, err := engine.Unlisted(s.engine.Dir, s.engine.Table)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(out, "Every image has a table entry ✅")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
	case flagTableYAML:
		b, err := yaml.Marshal(struct {
			Redactions types.Table `yaml:"redactions"`
		}{tbl})
		if err != nil {
			return err
		}
		if s.noColor || !colorFor(out) {
			_, err = out.Write(b)
			return err
		}
		return highlightYAML(out, string(b))
	case flagJSON:
		return writeIndentedJSON(out, tbl)
	default:
		report.PrintTable(out, tbl)
	}
	return nil
}

func highlightYAML(w io.Writer, src string) error {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		_, err = io.WriteString(w, src)
		return err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		_, err = io.WriteString(w, src)
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
