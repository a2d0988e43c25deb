package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"apod_fetcher/internal/handler"
	"apod_fetcher/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// serve runs the scheduler and the HTTP API until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	sched := scheduler.NewScheduler(a.svc, a.cfg.API.Key, a.cfg.Sync.Interval, a.cfg.Sync.RunTimeout, a.logger)

	h := handler.New(a.svc, handler.Config{
		APIKey:   a.cfg.API.Key,
		Base:     ctx,
		Gatherer: a.registry,
	}, a.logger)

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	go func() {
		a.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.logger.Info("starting apod syncer",
		"interval", a.cfg.Sync.Interval,
		"driver", a.cfg.Database.Driver,
		"publisher", a.cfg.RabbitMQ.Enabled,
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("received shutdown signal")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", "error", err)
	}

	return runErr
}
