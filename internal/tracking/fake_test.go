package tracking

import (
	"fmt"

	"xplogd-live/internal/mapview"
)

// recorder guarda cada llamada que recibe el mapa.
type recorder struct {
	calls    []string
	next     int
	live     map[mapview.Handle]mapview.LonLat
	icons    map[mapview.Handle]mapview.Icon
	rendered []string
}

func newRecorder() *recorder {
	return &recorder{
		live:  make(map[mapview.Handle]mapview.LonLat),
		icons: make(map[mapview.Handle]mapview.Icon),
	}
}

func (r *recorder) CreateMarker(pos mapview.LonLat, icon mapview.Icon) mapview.Handle {
	r.next++
	h := mapview.Handle(fmt.Sprintf("m%d", r.next))
	r.live[h] = pos
	r.icons[h] = icon
	r.calls = append(r.calls, "create")
	return h
}

func (r *recorder) MoveMarker(h mapview.Handle, pos mapview.LonLat) {
	r.live[h] = pos
	r.calls = append(r.calls, "move")
}

func (r *recorder) SetMarkerIcon(h mapview.Handle, icon mapview.Icon) {
	r.icons[h] = icon
	r.calls = append(r.calls, "icon")
}

func (r *recorder) RemoveMarker(h mapview.Handle) {
	delete(r.live, h)
	delete(r.icons, h)
	r.calls = append(r.calls, "remove")
}

func (r *recorder) CenterAndZoom(pos mapview.LonLat, zoom int) {
	r.calls = append(r.calls, fmt.Sprintf("center:%d", zoom))
}

func (r *recorder) Render(text string) {
	r.rendered = append(r.rendered, text)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.calls = nil
	r.rendered = nil
}
