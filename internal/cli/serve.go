package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/internal/api"
	"github.com/tablewright/seatplan/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
		storeDir string
		noStore  bool
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the seating engine over HTTP",
		Long: `Serve the seating engine over HTTP.

Clients create plan sessions from TOML configurations and edit them through
assignment, swap, and lock endpoints. Named snapshots are saved to the plan
store; use --mongo for a shared MongoDB store or --no-store to disable
persistence entirely. The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, noCache, redisURL, storeDir, noStore, mongoURI, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the build cache")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the build cache")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "plan store directory (default: ~/.config/seatplan/plans)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the plan store")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB connection URI for the plan store")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "seatplan", "MongoDB database name")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool, redisURL, storeDir string, noStore bool, mongoURI, mongoDB string) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(cmd, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var planStore store.Store
	if !noStore {
		planStore, err = openStore(cmd, storeDir, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("open plan store: %w", err)
		}
		defer planStore.Close()
	}

	server := api.NewServer(api.Config{
		Runner: runner,
		Store:  planStore,
		Logger: c.Logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
