package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/biofabric/biofabric/pkg/api"
	"github.com/biofabric/biofabric/pkg/session"
	"github.com/biofabric/biofabric/pkg/session/store/mongostore"
	"github.com/biofabric/biofabric/pkg/session/store/redisstore"
)

// serveCommand creates the serve command, which runs the HTTP API a
// WebGL host talks to, backed by a chosen session.Store.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		backend    string
		sessionDir string
		redisAddr  string
		redisDB    int
		mongoURI   string
		mongoDB    string
		mongoColl  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the BioFabric HTTP API",
		Long: `Serve runs the chi-based HTTP API a WebGL host talks to: it stores
and retrieves sessions, extracts render frames for a requested
viewport, and answers hit-test and drag-select queries. Sessions are
held in a FileStore by default; --backend redis or --backend mongo
point it at a shared store instead, for deployments running behind a
load balancer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx, backend, sessionDir, redisAddr, redisDB, mongoURI, mongoDB, mongoColl)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer store.Close()
			return c.runServe(ctx, addr, store)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&backend, "backend", "file", "session store backend: file, redis, mongo")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "FileStore directory (backend=file; defaults to ~/.config/biofabric/sessions)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address (backend=redis)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database index (backend=redis)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI (backend=mongo)")
	cmd.Flags().StringVar(&mongoDB, "mongo-database", "biofabric", "MongoDB database name (backend=mongo)")
	cmd.Flags().StringVar(&mongoColl, "mongo-collection", "sessions", "MongoDB collection name (backend=mongo)")

	return cmd
}

func (c *CLI) openStore(ctx context.Context, backend, sessionDir, redisAddr string, redisDB int, mongoURI, mongoDB, mongoColl string) (session.Store, error) {
	switch backend {
	case "", "file":
		return session.NewFileStore(sessionDir)
	case "redis":
		return redisstore.New(ctx, redisstore.Config{Addr: redisAddr, DB: redisDB})
	case "mongo":
		return mongostore.New(ctx, mongostore.Config{URI: mongoURI, Database: mongoDB, Collection: mongoColl})
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be file, redis, or mongo)", backend)
	}
}

// runServe builds the API server and serves it on addr until ctx is
// cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, store session.Store) error {
	ctx = withLogger(ctx, c.Logger)

	srv := api.NewServer(store, c.Logger)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		loggerFromContext(ctx).Info("serving", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		loggerFromContext(ctx).Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}
