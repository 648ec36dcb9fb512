package link

import "xplogd-live/internal/mapview"

// OpKind es el tipo de operación que viaja en cada línea.
type OpKind string

const (
	OpCreate OpKind = "marker_create"
	OpMove   OpKind = "marker_move"
	OpIcon   OpKind = "marker_icon"
	OpRemove OpKind = "marker_remove"
	OpCenter OpKind = "view_center"
	OpInfo   OpKind = "info"
)

// Op es una línea NDJSON hacia el proxy de render.
type Op struct {
	Op     OpKind          `json:"op"`
	Handle mapview.Handle  `json:"handle,omitempty"`
	Pos    *mapview.LonLat `json:"pos,omitempty"`
	Icon   *mapview.Icon   `json:"icon,omitempty"`
	Zoom   int             `json:"zoom,omitempty"`
	Text   string          `json:"text,omitempty"`
}
