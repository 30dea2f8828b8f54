package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/internal/report"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Zeigt einen Journal-Eintrag mit vollstaendiger Diagnose",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Ausgabe als JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Fprintln(out, report.NewRenderer(cfg.Report).Record(rec))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ID:         %s\n", rec.ID)
	fmt.Fprintf(out, "  Zeitpunkt:  %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(out, "  Quelle:     %s\n", rec.Source)
	fmt.Fprintf(out, "  Kategorie:  %s\n", rec.Category)
	fmt.Fprintf(out, "  Schwere:    %s\n", rec.Severity)
	fmt.Fprintf(out, "  Art:        %s\n", faultKind(rec))
	fmt.Fprintf(out, "  Alarm:      %s\n", yesNo(exception.ParseSeverity(rec.Severity).ShouldAlert()))
	fmt.Fprintf(out, "  Datei:      %s\n", rec.File)
	fmt.Fprintf(out, "  Funktion:   %s\n", rec.Function)
	fmt.Fprintf(out, "  Zeile:      %d\n", rec.Line)
	fmt.Fprintf(out, "  Diagnose:   %s\n", rec.Diagnostic)
	return nil
}

func faultKind(rec *journal.Record) string {
	if exception.IsComponent(rec.Fault()) {
		return "Komponentenfehler"
	}
	return "Fehler"
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}
