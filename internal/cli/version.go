package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hightemp/isocountry/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "isogen %s\n", Version)
		fmt.Fprintf(out, "  commit:       %s\n", Commit)
		fmt.Fprintf(out, "  built:        %s\n", BuildTime)
		fmt.Fprintf(out, "  index format: %d\n", config.IndexFormatVersion)
		return nil
	},
}
