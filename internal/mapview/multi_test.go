package mapview

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestMultiFansOut(t *testing.T) {
	a, b := NewLayer(), NewLayer()
	v := Multi(a, b)

	h := v.CreateMarker(LonLat{Lon: 1, Lat: 2}, testIcon)
	v.CenterAndZoom(LonLat{Lon: 1, Lat: 2}, DefaultZoom)
	v.MoveMarker(h, LonLat{Lon: 3, Lat: 4})
	for i, l := range []*Layer{a, b} {
		fc := l.FeatureCollection()
		if len(fc.Features) != 1 || fc.Features[0].Geometry.Point[0] != 3 {
			t.Errorf("layer %d not updated: %+v", i, fc.Features)
		}
		if !l.ViewState().Centered {
			t.Errorf("layer %d not centered", i)
		}
	}

	v.RemoveMarker(h)
	if a.Len() != 0 || b.Len() != 0 {
		t.Errorf("markers left: %d, %d", a.Len(), b.Len())
	}
}

func TestMultiSingleViewPassthrough(t *testing.T) {
	l := NewLayer()
	if Multi(l) != View(l) {
		t.Error("single view should be returned as is")
	}
}

func TestPanels(t *testing.T) {
	a, b := NewLayer(), NewLayer()
	Panels{a, b}.Render("x")
	if a.Info() != "x" || b.Info() != "x" {
		t.Errorf("panels = %q, %q", a.Info(), b.Info())
	}
}

func TestInstrumentPassesThrough(t *testing.T) {
	l := NewLayer()
	v := Instrument(l)
	h := v.CreateMarker(LonLat{Lon: 0, Lat: 0}, testIcon)
	v.MoveMarker(h, LonLat{Lon: 0, Lat: 1})
	v.SetMarkerIcon(h, testIcon)
	if l.Len() != 1 {
		t.Fatalf("len = %d", l.Len())
	}
	v.RemoveMarker(h)
	if l.Len() != 0 {
		t.Errorf("len = %d", l.Len())
	}
}

func TestDistance(t *testing.T) {
	// un grado de latitud ~ 111 km
	d := Distance(LonLat{Lon: 0, Lat: 0}, LonLat{Lon: 0, Lat: 1})
	if math.Abs(d-111_200) > 1000 {
		t.Errorf("distance = %v m", d)
	}
}

func TestLogPanelOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPanel(slog.New(slog.NewJSONHandler(&buf, nil)))
	p.Render("a")
	p.Render("a")
	p.Render("b")
	if n := strings.Count(buf.String(), "panel: updated"); n != 2 {
		t.Errorf("logged %d times, want 2", n)
	}
}
