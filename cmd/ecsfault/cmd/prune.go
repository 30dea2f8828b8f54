package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/foundation/core/log"
)

var (
	pruneOlderThan time.Duration
	pruneVacuum    bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Loescht alte Eintraege aus dem Fehler-Journal",
	Long: `Loescht Eintraege, die aelter als die angegebene Zeitspanne sind.
Ohne --older-than gilt journal.retention aus der Konfiguration.
Mit --vacuum wird die Datenbankdatei anschliessend verkleinert.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 0, "Maximales Alter (z.B. 720h)")
	pruneCmd.Flags().BoolVar(&pruneVacuum, "vacuum", false, "Journal nach dem Loeschen komprimieren")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, logger, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	olderThan := pruneOlderThan
	if olderThan <= 0 {
		olderThan = cfg.Journal.Retention.Duration
	}

	deleted, err := store.Prune(cmd.Context(), olderThan)
	if err != nil {
		return err
	}
	logger.Info("journal pruned", log.Field("deleted", deleted), log.Duration("older_than", olderThan))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d Eintrag/Eintraege geloescht (aelter als %s)\n", deleted, olderThan)

	if pruneVacuum {
		if err := store.Vacuum(cmd.Context()); err != nil {
			return fmt.Errorf("failed to vacuum journal: %w", err)
		}
		logger.Info("journal vacuumed")
		fmt.Fprintln(out, "Journal komprimiert")
	}
	return nil
}
