// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     cmd
// Description: Root command and shared setup for the ecsfault CLI
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/internal/journal"
	"github.com/msto63/ecsfault/pkg/core/config"
	"github.com/msto63/ecsfault/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ecsfault",
	Short: "ecsfault - Fehlerberichte fuer das mDW ECS Toolkit",
	Long: `ecsfault erfasst Fehler aus ECS-Anwendungen mit Kategorie und
Quellort (Datei, Funktion, Zeile), speichert sie im Fehler-Journal
und stellt sie im Terminal oder als Live-Feed bereit.

Befehle:
  list     - Journal-Eintraege auflisten
  show     - Einzelnen Eintrag anzeigen
  stats    - Statistik nach Kategorie und Quelle
  prune    - Alte Eintraege loeschen
  view     - Interaktiver Fault Viewer
  serve    - WebSocket Live-Feed starten
  demo     - Beispiel-Fehler erzeugen und melden`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $ECSFAULT_CONFIG oder ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Fehler: %v\n", err)
}

// loadConfig loads the configuration named by --config, the environment
// or the default locations. Without any file the defaults are used.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if errors.Is(err, config.ErrNoConfig) {
		return config.Default(), nil
	}
	return cfg, err
}

// newLogger creates the CLI logger from the [general] section
func newLogger(cfg *config.Config, out io.Writer) *log.Logger {
	lc := logging.FromGeneral(cfg.General)
	lc.Verbose = verbose
	lc.Output = out
	return logging.NewLogger(lc)
}

// setup loads config, logger and journal for a command
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, journal.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	logger.Debug("journal opened", log.String("driver", cfg.Journal.Driver), log.String("path", cfg.Journal.Path))

	return cfg, logger, store, nil
}
