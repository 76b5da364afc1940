package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/shotredact/internal/types"
	"golang.org/x/term"
)

const rule = "=================================================="

type PrintOptions struct {
	NoColor bool
	// Details adds a per-file table after the completion line.
	Details bool
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ColorEnabled reports whether f is a terminal and color was not disabled.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func paint(s lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// PrintBanner writes the run header.
func PrintBanner(w io.Writer, dir string, opts PrintOptions) {
	fmt.Fprintln(w, paint(okStyle, "🔐 Screenshot Redaction", opts.NoColor))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "📁 Screenshots directory: %s\n", dir)
}

// PrintSummary writes the final tally and, with opts.Details, a table of
// per-file outcomes.
func PrintSummary(w io.Writer, sum types.Summary, opts PrintOptions) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	line := fmt.Sprintf("✅ Completed: %d/%d screenshots processed", sum.Succeeded, sum.Total)
	if sum.Succeeded < sum.Total {
		fmt.Fprintln(w, paint(warnStyle, line, opts.NoColor))
		fmt.Fprintln(w, paint(warnStyle, "⚠️  Some screenshots could not be processed. Check the output above.", opts.NoColor))
	} else {
		fmt.Fprintln(w, paint(okStyle, line, opts.NoColor))
	}
	if !opts.Details || len(sum.Results) == 0 {
		return
	}
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("FILE", "STATUS", "SIZE", "REDACTIONS", "DETAIL")
	for _, r := range sum.Results {
		size := ""
		if r.Width > 0 {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		_ = table.Append([]string{r.File, status(r, opts.NoColor), size, fmt.Sprint(len(r.Applied)), detail(r)})
	}
	_ = table.Render()
	fmt.Fprintln(w, paint(dimStyle, fmt.Sprintf("Duration: %.2fs", sum.Duration.Seconds()), opts.NoColor))
}

func status(r types.Result, noColor bool) string {
	switch {
	case !r.OK:
		return paint(failStyle, "failed", noColor)
	case r.Skipped:
		return paint(dimStyle, "skipped", noColor)
	default:
		return paint(okStyle, "redacted", noColor)
	}
}

func detail(r types.Result) string {
	if r.Error != "" {
		return r.Error
	}
	if r.Reason != "" {
		return r.Reason
	}
	return strings.Join(r.Applied, ", ")
}

// PrintTable lists every redaction of t, one row per box.
func PrintTable(w io.Writer, t types.Table) {
	if len(t) == 0 {
		fmt.Fprintln(w, "No redactions configured")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("FILE", "LABEL", "BOX", "PLACEHOLDER")
	n := 0
	for _, e := range t {
		for _, r := range e.Redactions {
			_ = table.Append([]string{e.File, r.LabelOrDefault(), r.Box.String(), r.PlaceholderOrDefault()})
			n++
		}
	}
	_ = table.Render()
	fmt.Fprintf(w, "Files: %d, redactions: %d\n", len(t), n)
}

// WriteJSON pretty-prints sum for pipelines.
func WriteJSON(w io.Writer, sum types.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
