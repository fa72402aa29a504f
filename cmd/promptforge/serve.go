package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/api"
	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/handler"
	"github.com/promptforge/promptforge/internal/metrics"
	"github.com/promptforge/promptforge/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			database, err := e.openDB()
			if err != nil {
				return err
			}
			a, err := e.advisor()
			if err != nil {
				return err
			}
			g, err := e.generator(cmd.Context())
			if err != nil {
				return err
			}

			historyStore := store.NewHistoryStore(database)
			tokenStore := auth.NewSQLTokenStore(database)
			if n, err := historyStore.Count(cmd.Context()); err == nil {
				metrics.HistoryEntriesTotal.Set(float64(n))
			}

			deps := api.Deps{
				Advisor:      a,
				Generator:    g,
				HistoryStore: historyStore,
				TokenStore:   tokenStore,
			}
			if e.cfg.HTTP.RequireToken {
				deps.BearerAuth = auth.NewBearerTokenMiddleware(tokenStore)
			} else {
				log.Printf("serve: http.require_token is off, the API is unauthenticated")
			}

			srv := &http.Server{
				Addr:              e.cfg.HTTP.Addr,
				Handler:           handler.NewRouter(handler.Deps{API: deps, DB: database}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s", e.cfg.HTTP.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
