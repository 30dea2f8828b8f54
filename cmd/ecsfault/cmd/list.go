package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/internal/report"
)

var (
	listCategory string
	listSource   string
	listSince    time.Duration
	listContains string
	listLimit    int
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Listet Eintraege des Fehler-Journals",
	Long: `Listet die neuesten Eintraege des Fehler-Journals.

Beispiele:
  ecsfault list                         # Die letzten 20 Fehler
  ecsfault list --category Component    # Nur Component-Fehler
  ecsfault list --since 1h --json       # Letzte Stunde als JSON`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCategory, "category", "", "Nur diese Kategorie")
	listCmd.Flags().StringVar(&listSource, "source", "", "Nur diese Quelle")
	listCmd.Flags().DurationVar(&listSince, "since", 0, "Nur Eintraege der letzten Zeitspanne (z.B. 1h)")
	listCmd.Flags().StringVar(&listContains, "contains", "", "Text in der Fehlermeldung")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximale Anzahl")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Ausgabe als JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := journal.Filter{
		Source:   listSource,
		Category: listCategory,
		Contains: listContains,
		Limit:    listLimit,
	}
	if listSince > 0 {
		filter.Since = time.Now().Add(-listSince)
	}

	records, err := store.Query(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []*journal.Record{}
		}
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "Keine Eintraege gefunden.")
		return nil
	}

	renderer := report.NewRenderer(cfg.Report)
	for _, rec := range records {
		fmt.Fprintln(out, renderer.Record(rec))
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d Eintrag/Eintraege\n", len(records))
	return nil
}
