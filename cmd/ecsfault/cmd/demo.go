package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/internal/report"
)

var (
	demoSource string
	demoThrow  bool
	demoEntity int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Erzeugt einen Beispiel-Fehler und meldet ihn",
	Long: `Simuliert ein Physik-System, das auf eine fehlende Transform-Komponente
zugreift. Der Fehler wird tief in der Aufrufkette erzeugt, bis zum
Reporter weitergereicht, geloggt, im Journal gespeichert und angezeigt.

Mit --throw wird der Fehler per Panic geworfen und von Guard abgefangen
statt als Rueckgabewert weitergegeben.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoSource, "source", "physics", "Quelle des Fehlers")
	demoCmd.Flags().BoolVar(&demoThrow, "throw", false, "Fehler werfen statt zurueckgeben")
	demoCmd.Flags().IntVar(&demoEntity, "entity", 7, "Entity ohne Transform")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, logger, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	reporter := report.New(report.Options{
		Logger: logger,
		Store:  store,
		Source: demoSource,
	})

	w := newDemoWorld(demoEntity)
	if demoThrow {
		w.throw = true
	}

	rec, err := reporter.Guard(cmd.Context(), w.update)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Kein Fehler aufgetreten.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.NewRenderer(cfg.Report).Record(rec))
	fmt.Fprintf(out, "\nGespeichert als %s\n", rec.ID)
	return nil
}

// demoWorld is a minimal stand-in for an ECS world
type demoWorld struct {
	components map[int]map[string]bool
	throw      bool
}

func newDemoWorld(missing int) *demoWorld {
	w := &demoWorld{components: make(map[int]map[string]bool)}
	for id := 1; id <= 10; id++ {
		w.components[id] = map[string]bool{"Transform": id != missing, "Velocity": true}
	}
	return w
}

func (w *demoWorld) update() error {
	for id := 1; id <= len(w.components); id++ {
		if err := w.integrate(id); err != nil {
			return fmt.Errorf("physics system: %w", err)
		}
	}
	return nil
}

func (w *demoWorld) integrate(entity int) error {
	if _, err := w.get(entity, "Velocity"); err != nil {
		return err
	}
	if _, err := w.get(entity, "Transform"); err != nil {
		return fmt.Errorf("integrate entity %d: %w", entity, err)
	}
	return nil
}

func (w *demoWorld) get(entity int, component string) (bool, error) {
	if w.components[entity][component] {
		return true, nil
	}
	if w.throw {
		exception.Throwf(exception.Component, "missing %s on entity %d", component, entity)
	}
	return false, exception.Raisef(exception.Component, "missing %s on entity %d", component, entity)
}
