package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/athletescrape/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.Get())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version.String()

	versionCmd.Flags().Bool("json", false, "print as JSON")
}
