// Package poller consulta /live/ a intervalo fijo y normaliza cada
// respuesta en un tracking.Event.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"xplogd-live/internal/observability"
	"xplogd-live/internal/tracking"
)

const DefaultInterval = 3000 * time.Millisecond

// maxBody acota lo que se lee de /live/.
const maxBody = 1 << 20

var errNoObject = errors.New("no tracked object in response")

type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger
}

type Option func(*Poller)

func WithHTTPClient(c *http.Client) Option {
	return func(p *Poller) { p.client = c }
}

func New(url string, interval time.Duration, lg *slog.Logger, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if lg == nil {
		lg = observability.NopLogger()
	}
	p := &Poller{
		url:      url,
		interval: interval,
		client:   &http.Client{},
		logger:   lg.With("component", "poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consulta una vez al arrancar y luego en cada tick hasta que ctx se
// cancele. Las consultas son secuenciales: si una tarda más que el
// intervalo, el ticker descarta los ticks perdidos y nunca hay dos en
// vuelo.
func (p *Poller) Run(ctx context.Context, apply func(tracking.Event)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		ev := p.Fetch(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		apply(ev)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Fetch hace una consulta. Cualquier fallo (transporte, status, JSON,
// campos faltantes) se traduce en Absent.
func (p *Poller) Fetch(ctx context.Context) tracking.Event {
	start := time.Now()
	defer observability.ObservePollLatency(start)

	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	o, err := p.get(ctx)
	switch {
	case err == nil:
		observability.Polls.WithLabelValues("observed").Inc()
		return tracking.Observed(o)
	case errors.Is(err, errNoObject):
		observability.Polls.WithLabelValues("absent").Inc()
		p.logger.Debug("poll: nothing tracked", "reason", err)
	default:
		observability.Polls.WithLabelValues("error").Inc()
		if !errors.Is(err, context.Canceled) {
			p.logger.Warn("poll: request failed", "url", p.url, "err", err)
		}
	}
	return tracking.Absent()
}

func (p *Poller) get(ctx context.Context) (tracking.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return tracking.Observation{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return tracking.Observation{}, err
	}
	defer res.Body.Close()

	// El backend contesta 404 cuando no hay posición activa.
	if res.StatusCode == http.StatusNotFound {
		return tracking.Observation{}, fmt.Errorf("status 404: %w", errNoObject)
	}
	if res.StatusCode != http.StatusOK {
		return tracking.Observation{}, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return tracking.Observation{}, err
	}
	return Decode(body)
}

// liveBody usa punteros para distinguir "campo ausente" de cero.
type liveBody struct {
	Latitude      *float64               `json:"latitude"`
	Longitude     *float64               `json:"longitude"`
	Altitude      *float64               `json:"altitude"`
	Track         *float64               `json:"track"`
	GroundSpeed   *float64               `json:"ground_speed"`
	AirSpeed      *float64               `json:"air_speed"`
	VerticalSpeed *float64               `json:"vertical_speed"`
	Aircraft      *tracking.AircraftInfo `json:"aircraft"`
}

// Decode convierte un cuerpo de /live/ en una observación. Devuelve un
// error que envuelve errNoObject si faltan posición, altitud o track.
func Decode(body []byte) (tracking.Observation, error) {
	var b liveBody
	if err := json.Unmarshal(body, &b); err != nil {
		return tracking.Observation{}, fmt.Errorf("decode live body: %w", err)
	}
	if b.Latitude == nil || b.Longitude == nil || b.Altitude == nil || b.Track == nil {
		return tracking.Observation{}, errNoObject
	}
	if *b.Latitude < -90 || *b.Latitude > 90 || *b.Longitude < -180 || *b.Longitude > 180 {
		return tracking.Observation{}, fmt.Errorf("coordinates out of range (%v, %v)", *b.Latitude, *b.Longitude)
	}

	return tracking.Observation{
		Latitude:      *b.Latitude,
		Longitude:     *b.Longitude,
		Altitude:      *b.Altitude,
		Track:         *b.Track,
		GroundSpeed:   deref(b.GroundSpeed),
		AirSpeed:      deref(b.AirSpeed),
		VerticalSpeed: deref(b.VerticalSpeed),
		Aircraft:      b.Aircraft,
	}, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
