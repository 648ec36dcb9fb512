// Package ingest recibe los frames del plugin (/tracking/) y entrega la
// posición activa (/live/).
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"xplogd-live/internal/codec"
	"xplogd-live/internal/observability"
	"xplogd-live/internal/pipeline"
	"xplogd-live/internal/store"
	"xplogd-live/internal/utilities"
)

const maxFrame = 4 << 10

// PositionStore es lo que el handler necesita del store.
type PositionStore interface {
	SavePosition(ctx context.Context, p *pipeline.Position) error
	ActivePosition(ctx context.Context) (*pipeline.Position, error)
}

type Handler struct {
	store    PositionStore
	logger   *slog.Logger
	auditDir string
	now      func() time.Time
}

// NewHandler; con auditDir vacío no se guardan los frames crudos.
func NewHandler(s PositionStore, lg *slog.Logger, auditDir string) *Handler {
	return &Handler{
		store:    s,
		logger:   lg.With("component", "ingest"),
		auditDir: auditDir,
		now:      time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/tracking/", h.Tracking)
	r.Get("/live/", h.Live)
}

func (h *Handler) Tracking(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != codec.ContentType {
		observability.IngestRejects.WithLabelValues("content_type").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxFrame))
	if err != nil {
		observability.IngestRejects.WithLabelValues("read").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if h.auditDir != "" {
		if err := utilities.CreateLog(h.auditDir, "FRAMES", strconv.Quote(string(data))); err != nil {
			h.logger.Warn("audit log failed", "err", err)
		}
	}

	frame, err := codec.ParseXplogd(data)
	if err != nil {
		observability.IngestRejects.WithLabelValues("frame").Inc()
		h.logger.Warn("bad frame", "err", err, "remote", r.RemoteAddr)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	pos, err := pipeline.BuildPosition(frame, h.now())
	if err != nil {
		observability.IngestRejects.WithLabelValues("coords").Inc()
		h.logger.Warn("bad position", "err", err, "lat", frame.Latitude, "lon", frame.Longitude)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.store.SavePosition(r.Context(), pos); err != nil {
		observability.RedisErrors.Inc()
		h.logger.Error("save position failed", "err", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	observability.PositionsIngested.Inc()
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	pos, err := h.store.ActivePosition(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		observability.RedisErrors.Inc()
		h.logger.Error("load position failed", "err", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pos.Live())
}
