package shotredact

import (
	"fmt"

	"github.com/redactyl/shotredact/internal/update"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version and check for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shotredact v%s\n", version)
			if flagNoUpdateCheck {
				return nil
			}
			latest, newer, err := update.Check(cmd.Context(), version, false)
			switch {
			case err != nil:
				fmt.Fprintln(cmd.ErrOrStderr(), "update check failed:", err)
			case newer:
				fmt.Fprintf(out, "new version available: v%s (run 'shotredact --self-update')\n", latest)
			}
			return nil
		},
	})
}
