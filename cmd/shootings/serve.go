package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/shooting-analytics/internal/adapter/http"
	"github.com/couchcryptid/shooting-analytics/internal/incidentmap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render the incident map and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyMapFlags(cmd, a)
			stringFlag(cmd, "addr", &a.cfg.HTTPAddr)
			return a.serve(cmd)
		},
	}
	addMapFlags(cmd)
	cmd.Flags().String("addr", "", "listen address (default $HTTP_ADDR)")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	ctx := cmd.Context()
	var store incidentmap.Store
	srv := httpadapter.NewServer(a.cfg.HTTPAddr, &store, &store, a.logger)

	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	// Serve health while the map is built so /readyz reflects progress.
	m, err := a.buildMap(cmd)
	if err == nil {
		err = store.Set(m)
	}
	if err != nil {
		a.shutdown(srv)
		return err
	}
	a.logger.Info("map ready", "addr", a.cfg.HTTPAddr, "markers", store.Markers())

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			a.logger.Error("http server error", "error", err)
			return err
		}
	}
	a.logger.Info("shutting down")
	a.shutdown(srv)
	a.logger.Info("shutdown complete")
	return nil
}

func (a *app) shutdown(srv *httpadapter.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
}
