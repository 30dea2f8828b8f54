package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistik des Fehler-Journals",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	_, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Fehler-Journal")
	fmt.Fprintln(out, "==============")
	fmt.Fprintf(out, "Gesamt: %d\n", stats.Total)
	if !stats.Last.IsZero() {
		fmt.Fprintf(out, "Zuletzt: %s\n", stats.Last.Local().Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintln(out)
	printCounts(out, "Nach Kategorie:", stats.ByCategory)
	fmt.Fprintln(out)
	printCounts(out, "Nach Quelle:", stats.BySource)
	return nil
}

func printCounts(out io.Writer, title string, counts map[string]int64) {
	fmt.Fprintln(out, title)

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := k
		if label == "" {
			label = "(ohne)"
		}
		fmt.Fprintf(out, "  %-20s %6d\n", label, counts[k])
	}
}
