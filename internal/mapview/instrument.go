package mapview

import (
	geo "github.com/paulmach/go.geo"

	"xplogd-live/internal/observability"
)

type instrumented struct {
	next View
	last map[Handle]LonLat
}

// Instrument envuelve una View y publica en Prometheus las operaciones,
// si hay avión en el mapa y cuánto se movió el marcador en cada
// actualización.
func Instrument(next View) View {
	return &instrumented{next: next, last: make(map[Handle]LonLat)}
}

func (v *instrumented) CreateMarker(pos LonLat, icon Icon) Handle {
	h := v.next.CreateMarker(pos, icon)
	v.last[h] = pos
	observability.MarkerOps.WithLabelValues("create").Inc()
	observability.Tracked.Set(float64(len(v.last)))
	return h
}

func (v *instrumented) MoveMarker(h Handle, pos LonLat) {
	if prev, ok := v.last[h]; ok {
		observability.MarkerDisplacement.Observe(Distance(prev, pos))
		v.last[h] = pos
	}
	v.next.MoveMarker(h, pos)
	observability.MarkerOps.WithLabelValues("move").Inc()
}

func (v *instrumented) SetMarkerIcon(h Handle, icon Icon) {
	v.next.SetMarkerIcon(h, icon)
	observability.MarkerOps.WithLabelValues("icon").Inc()
}

func (v *instrumented) RemoveMarker(h Handle) {
	v.next.RemoveMarker(h)
	delete(v.last, h)
	observability.MarkerOps.WithLabelValues("remove").Inc()
	observability.Tracked.Set(float64(len(v.last)))
}

func (v *instrumented) CenterAndZoom(pos LonLat, zoom int) {
	v.next.CenterAndZoom(pos, zoom)
	observability.MarkerOps.WithLabelValues("center").Inc()
}

// Distance devuelve la distancia geodésica (haversine) en metros.
func Distance(a, b LonLat) float64 {
	return geo.NewPoint(a.Lon, a.Lat).GeoDistanceFrom(geo.NewPoint(b.Lon, b.Lat), true)
}
