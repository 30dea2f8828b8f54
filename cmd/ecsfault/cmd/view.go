package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/internal/tui/faultviewer"
)

var (
	viewSource     string
	viewMaxRecords int
	viewRefresh    time.Duration
)

var viewCmd = &cobra.Command{
	Use:     "view",
	Aliases: []string{"tui", "viewer"},
	Short:   "Startet den interaktiven Fault Viewer",
	Long: `Startet den interaktiven Fault Viewer.

Der Viewer zeigt das Fehler-Journal in einer Terminal-UI an
und aktualisiert sich periodisch.

Tastenkuerzel:
  1-4         Schwere togglen (1=LOW, 2=MEDIUM, 3=HIGH, 4=CRITICAL)
  k           Kategorie wechseln
  0           Alle Filter zuruecksetzen
  p / Space   Pause/Resume
  r           Refresh
  a           Auto-Scroll togglen
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  q / Ctrl+C  Beenden`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewSource, "source", "", "Nur diese Quelle anzeigen")
	viewCmd.Flags().IntVar(&viewMaxRecords, "max", 1000, "Maximale Anzahl der angezeigten Fehler")
	viewCmd.Flags().DurationVar(&viewRefresh, "refresh", 2*time.Second, "Aktualisierungsintervall")
}

func runView(cmd *cobra.Command, args []string) error {
	_, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return faultviewer.Run(faultviewer.Config{
		Store:           store,
		MaxRecords:      viewMaxRecords,
		RefreshInterval: viewRefresh,
		Source:          viewSource,
	})
}
