package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"aimlab/internal/app"
	"aimlab/internal/config"

	"golang.org/x/sync/errgroup"
)

// Run serves until ctx is cancelled, then shuts the HTTP server down.
func Run(ctx context.Context) error {
	appCfg := config.Load()

	database, initial := app.OpenDatabase(ctx, appCfg)
	if database != nil {
		defer database.Close()
	}

	srv := New(appCfg, database, initial)
	eg, ctx := errgroup.WithContext(ctx)
	httpSrv := &http.Server{
		Addr:              "0.0.0.0:" + appCfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// long-lived /events and /play requests end with ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	eg.Go(func() error {
		log.Printf("Server listening on http://localhost:%s (%s)\n", appCfg.Port, appCfg.Variant)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v\n", err)
			return httpSrv.Close()
		}
		return nil
	})
	return eg.Wait()
}
