package mapview

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	geojson "github.com/paulmach/go.geojson"
)

type layerMarker struct {
	pos  LonLat
	icon Icon
}

// Layer guarda en memoria el estado que pintaría un mapa web (Leaflet,
// OpenLayers, Google Maps) y lo sirve como GeoJSON. Es seguro leerla
// desde handlers HTTP o gRPC mientras el reconciliador la modifica.
type Layer struct {
	mu       sync.RWMutex
	markers  map[Handle]layerMarker
	center   LonLat
	zoom     int
	centered bool
	info     string
}

func NewLayer() *Layer {
	return &Layer{markers: make(map[Handle]layerMarker)}
}

func (l *Layer) CreateMarker(pos LonLat, icon Icon) Handle {
	h := NewHandle()
	l.Put(h, pos, icon)
	return h
}

// Put crea o reemplaza el marcador h; lo usa el servicio de render
// remoto, donde el handle viene del cliente.
func (l *Layer) Put(h Handle, pos LonLat, icon Icon) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers[h] = layerMarker{pos: pos, icon: icon}
}

func (l *Layer) MoveMarker(h Handle, pos LonLat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.markers[h]; ok {
		m.pos = pos
		l.markers[h] = m
	}
}

func (l *Layer) SetMarkerIcon(h Handle, icon Icon) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.markers[h]; ok {
		m.icon = icon
		l.markers[h] = m
	}
}

func (l *Layer) RemoveMarker(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.markers, h)
}

func (l *Layer) CenterAndZoom(pos LonLat, zoom int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.center, l.zoom, l.centered = pos, zoom, true
}

func (l *Layer) Render(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = text
}

// Len devuelve cuántos marcadores hay en la capa.
func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.markers)
}

func (l *Layer) Info() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.info
}

// ViewState es lo que el cliente web necesita para posicionar el mapa.
type ViewState struct {
	Centered bool    `json:"centered"`
	Center   *LonLat `json:"center,omitempty"`
	Zoom     int     `json:"zoom,omitempty"`
}

func (l *Layer) ViewState() ViewState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.centered {
		return ViewState{}
	}
	c := l.center
	return ViewState{Centered: true, Center: &c, Zoom: l.zoom}
}

// FeatureCollection arma un punto por marcador, ordenado por handle,
// con el estilo en las propiedades.
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	l.mu.RLock()
	defer l.mu.RUnlock()

	handles := make([]string, 0, len(l.markers))
	for h := range l.markers {
		handles = append(handles, string(h))
	}
	sort.Strings(handles)

	fc := geojson.NewFeatureCollection()
	for _, h := range handles {
		m := l.markers[Handle(h)]
		f := geojson.NewPointFeature([]float64{m.pos.Lon, m.pos.Lat})
		f.ID = h
		f.SetProperty("path", m.icon.Path)
		f.SetProperty("fill", m.icon.Fill.CSS())
		f.SetProperty("rotation", m.icon.Rotation)
		f.SetProperty("opacity", m.icon.Opacity)
		f.SetProperty("scale", m.icon.Scale)
		f.SetProperty("stroke_weight", m.icon.StrokeWeight)
		fc.AddFeature(f)
	}
	return fc
}

func (l *Layer) ServeGeoJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := l.FeatureCollection().MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (l *Layer) ServeView(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(l.ViewState())
}

func (l *Layer) ServeInfo(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(l.Info()))
}
