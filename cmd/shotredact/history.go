package shotredact

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/shotredact/internal/audit"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous runs recorded in the audit log",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().StringVarP(&flagDir, "dir", "d", "", "screenshots directory (default \"screenshots\")")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "maximum number of runs to show (0 = all)")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	log := audit.NewAuditLog(s.engine.Dir)
	records, err := log.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagJSON {
		return writeIndentedJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "No runs recorded in %s\n", log.Path())
		return nil
	}
	table := tablewriter.NewWriter(out)
	table.Header("WHEN", "RUN", "MODE", "RESULT", "FAILED", "DURATION")
	for _, r := range records {
		failed := ""
		for i, f := range r.Failures {
			if i > 0 {
				failed += ", "
			}
			failed += f.File
		}
		_ = table.Append([]string{
			r.Timestamp.Local().Format(time.DateTime),
			r.RunID,
			r.Mode,
			fmt.Sprintf("%d/%d", r.Succeeded, r.Total),
			failed,
			r.Duration,
		})
	}
	_ = table.Render()
	return nil
}
