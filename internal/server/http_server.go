package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xplogd-live/internal/ingest"
	"xplogd-live/internal/mapview"
)

// NewRouter monta /tracking/ y /live/ (si ing no es nil) y los endpoints
// de la capa de mapa bajo /map.
func NewRouter(ing *ingest.Handler, layer *mapview.Layer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if ing != nil {
		ing.Routes(r)
	}
	r.Route("/map", func(r chi.Router) {
		r.Get("/markers.geojson", layer.ServeGeoJSON)
		r.Get("/view", layer.ServeView)
		r.Get("/info", layer.ServeInfo)
	})
	return r
}

func New(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start sirve hasta que ctx se cancele y entonces apaga srv con un margen
// de 5 segundos.
func Start(ctx context.Context, srv *http.Server, lg *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		lg.Info("HTTP server listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("error starting HTTP server %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
