package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, version.Info("ecsfault"))
		fmt.Fprintln(out, "  Komponenten:")
		for _, name := range []string{"exception", "journal", "feed"} {
			fmt.Fprintf(out, "    %-10s v%s\n", name, version.ComponentVersion(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
