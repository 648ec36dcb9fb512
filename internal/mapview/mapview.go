// Package mapview define el contrato entre el reconciliador y cualquier
// widget de mapa, más los adaptadores locales (capa GeoJSON, fan-out,
// métricas y panel en log).
package mapview

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultZoom es el nivel al que se centra la vista la primera vez.
const DefaultZoom = 10

// ForwardClosedArrow es la forma del icono del avión.
const ForwardClosedArrow = "FORWARD_CLOSED_ARROW"

// LonLat en grados, en el orden que esperan las librerías de mapas.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Handle identifica un marcador dentro de un adaptador. Es opaco para el
// reconciliador.
type Handle string

func NewHandle() Handle {
	return Handle(uuid.NewString())
}

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Icon es el estilo ya calculado del marcador. Rotation va en grados en
// sentido horario desde el norte.
type Icon struct {
	Path         string  `json:"path"`
	Fill         RGB     `json:"fill"`
	Rotation     float64 `json:"rotation"`
	Opacity      float64 `json:"opacity"`
	Scale        float64 `json:"scale"`
	StrokeWeight float64 `json:"stroke_weight"`
}

// View es la superficie de mapa. Ninguna operación devuelve error: cada
// adaptador registra sus propios fallos.
type View interface {
	CreateMarker(pos LonLat, icon Icon) Handle
	MoveMarker(h Handle, pos LonLat)
	SetMarkerIcon(h Handle, icon Icon)
	RemoveMarker(h Handle)
	CenterAndZoom(pos LonLat, zoom int)
}

// Panel muestra el texto informativo del avión seguido.
type Panel interface {
	Render(text string)
}
