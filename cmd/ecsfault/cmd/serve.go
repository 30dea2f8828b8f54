package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/msto63/ecsfault/internal/feed"
	"github.com/msto63/ecsfault/pkg/core/health"
)

var (
	serveHost string
	servePort int
	servePoll time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den WebSocket Live-Feed",
	Long: `Startet den WebSocket Live-Feed des Fehler-Journals.

Neue Journal-Eintraege werden als {"type":"fault","payload":...}
an alle verbundenen Clients gesendet. Ein {"type":"ping"} wird
mit {"type":"pong"} beantwortet.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (default: feed.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port (default: feed.port)")
	serveCmd.Flags().DurationVar(&servePoll, "poll", feed.DefaultTailInterval, "Abfrageintervall des Journals")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if serveHost != "" {
		cfg.Feed.Host = serveHost
	}
	if servePort != 0 {
		cfg.Feed.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := feed.NewHub(0)
	server := feed.NewServer(cfg.Feed, hub, logger)
	server.RegisterCheck(health.PingCheck("journal", func(ctx context.Context) error {
		_, err := store.Stats(ctx)
		return err
	}))
	tailer, err := feed.NewTailer(ctx, store, hub, servePoll, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fault-Feed: ws://%s%s\n", cfg.Feed.Address(), cfg.Feed.Path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.ListenAndServe(ctx) })
	g.Go(func() error { return tailer.Run(ctx) })
	return g.Wait()
}
