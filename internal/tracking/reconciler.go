package tracking

import (
	"log/slog"

	"xplogd-live/internal/mapview"
	"xplogd-live/internal/observability"
)

// trackedObject es el avión en el mapa; handle existe sii el slot no está
// vacío.
type trackedObject struct {
	obs    Observation
	handle mapview.Handle
}

// Reconciler es dueño del slot del avión seguido. No es seguro para uso
// concurrente: el loop del poller es su único llamador.
type Reconciler struct {
	view        mapview.View
	panel       mapview.Panel
	maxAltitude float64
	logger      *slog.Logger

	tracked  *trackedObject
	centered bool
}

type Option func(*Reconciler)

func WithMaxAltitude(ft float64) Option {
	return func(r *Reconciler) {
		if ft > 0 {
			r.maxAltitude = ft
		}
	}
}

func WithLogger(lg *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = lg
	}
}

func NewReconciler(view mapview.View, panel mapview.Panel, opts ...Option) *Reconciler {
	r := &Reconciler{
		view:        view,
		panel:       panel,
		maxAltitude: DefaultMaxAltitude,
		logger:      observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "reconciler")
	return r
}

// Reconcile aplica un resultado del poller: crea, mueve o quita el
// marcador y después refresca el panel.
func (r *Reconciler) Reconcile(ev Event) {
	o, observed := ev.Observation()

	switch {
	case !observed && r.tracked == nil:
		// nada que hacer

	case !observed:
		r.view.RemoveMarker(r.tracked.handle)
		r.logger.Info("aircraft lost", "handle", r.tracked.handle)
		r.tracked = nil

	case r.tracked == nil:
		if o.Aircraft != nil {
			a := *o.Aircraft
			o.Aircraft = &a
		}
		pos := o.LonLat()
		h := r.view.CreateMarker(pos, Icon(o, r.maxAltitude))
		if !r.centered {
			r.view.CenterAndZoom(pos, mapview.DefaultZoom)
			r.centered = true
		}
		r.tracked = &trackedObject{obs: o, handle: h}
		r.logger.Info("aircraft acquired", "handle", h, "lat", o.Latitude, "lon", o.Longitude, "alt", o.Altitude)

	default:
		r.view.MoveMarker(r.tracked.handle, o.LonLat())
		r.view.SetMarkerIcon(r.tracked.handle, Icon(o, r.maxAltitude))
		r.update(o)
	}

	r.panel.Render(InfoText(r.current()))
}

// update pisa los campos que cambian en vuelo; la identidad se conserva
// salvo que el avión se haya creado sin identificar.
func (r *Reconciler) update(o Observation) {
	p := &r.tracked.obs
	p.Latitude = o.Latitude
	p.Longitude = o.Longitude
	p.Altitude = o.Altitude
	p.Track = o.Track
	p.GroundSpeed = o.GroundSpeed
	p.AirSpeed = o.AirSpeed
	p.VerticalSpeed = o.VerticalSpeed
	if p.Aircraft == nil && o.Aircraft != nil {
		a := *o.Aircraft
		p.Aircraft = &a
	}
}

func (r *Reconciler) current() *Observation {
	if r.tracked == nil {
		return nil
	}
	return &r.tracked.obs
}

// Tracked devuelve una copia del avión seguido, si lo hay.
func (r *Reconciler) Tracked() (Observation, bool) {
	if r.tracked == nil {
		return Observation{}, false
	}
	o := r.tracked.obs
	if o.Aircraft != nil {
		a := *o.Aircraft
		o.Aircraft = &a
	}
	return o, true
}

// Centered indica si la vista ya se centró en esta sesión.
func (r *Reconciler) Centered() bool {
	return r.centered
}
