package tracking

import (
	"math"

	"xplogd-live/internal/mapview"
)

// DefaultMaxAltitude (pies) es la altitud a la que el icono llega a
// amarillo puro.
const DefaultMaxAltitude = 40000

const (
	iconOpacity      = 0.9
	iconScale        = 5
	iconStrokeWeight = 2
)

// Icon calcula el estilo del marcador: rojo y verde fijos en 255, el azul
// baja de 255 a 0 a medida que la altitud sube hasta maxAltitude. La
// flecha apunta al track.
func Icon(o Observation, maxAltitude float64) mapview.Icon {
	if maxAltitude <= 0 {
		maxAltitude = DefaultMaxAltitude
	}
	inv := math.Min(math.Max(maxAltitude-o.Altitude, 0), maxAltitude)
	if math.IsNaN(inv) {
		inv = 0
	}
	// 255*inv/max y no 255/max*inv: con max=40000 el segundo da 254.99...
	blue := math.Floor(255 * inv / maxAltitude)

	return mapview.Icon{
		Path:         mapview.ForwardClosedArrow,
		Fill:         mapview.RGB{R: 255, G: 255, B: uint8(blue)},
		Rotation:     normalizeTrack(o.Track),
		Opacity:      iconOpacity,
		Scale:        iconScale,
		StrokeWeight: iconStrokeWeight,
	}
}

// normalizeTrack deja el rumbo en [0, 360).
func normalizeTrack(track float64) float64 {
	r := math.Mod(track, 360)
	if r < 0 {
		r += 360
	}
	if math.IsNaN(r) {
		return 0
	}
	return r
}
