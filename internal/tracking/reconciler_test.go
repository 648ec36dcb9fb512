package tracking

import (
	"math/rand"
	"testing"

	"xplogd-live/internal/mapview"
)

var (
	planeA = Observation{
		Latitude: 47.45, Longitude: -122.3, Altitude: 8000, Track: 90,
		GroundSpeed: 250, AirSpeed: 240, VerticalSpeed: 1500,
		Aircraft: &AircraftInfo{ICAOType: "A320", Registration: "D-AXPL"},
	}
	planeA2 = Observation{
		Latitude: 47.50, Longitude: -122.1, Altitude: 12000, Track: 95,
		GroundSpeed: 280, AirSpeed: 270, VerticalSpeed: 1200,
	}
)

func TestReconcileAbsentWhenEmptyIsNoop(t *testing.T) {
	rec := newRecorder()
	r := NewReconciler(rec, rec)

	r.Reconcile(Absent())
	r.Reconcile(Absent())

	if len(rec.calls) != 0 {
		t.Errorf("marker calls = %v, want none", rec.calls)
	}
	if _, ok := r.Tracked(); ok {
		t.Error("slot not empty")
	}
	if len(rec.rendered) != 2 || rec.rendered[1] != OfflineMessage {
		t.Errorf("panel renders = %q", rec.rendered)
	}
}

func TestReconcileCreateCentersOnce(t *testing.T) {
	rec := newRecorder()
	r := NewReconciler(rec, rec)

	r.Reconcile(Observed(planeA))
	if rec.count("create") != 1 || rec.count("center:10") != 1 {
		t.Fatalf("calls = %v", rec.calls)
	}
	if !r.Centered() {
		t.Error("view not flagged as centered")
	}

	r.Reconcile(Absent())
	rec.reset()
	r.Reconcile(Observed(planeA))
	if rec.count("create") != 1 {
		t.Errorf("create calls = %d, want 1", rec.count("create"))
	}
	if rec.count("center:10") != 0 {
		t.Errorf("view centered twice: %v", rec.calls)
	}
}

func TestReconcileUpdateInPlace(t *testing.T) {
	rec := newRecorder()
	r := NewReconciler(rec, rec)
	r.Reconcile(Observed(planeA))
	rec.reset()

	r.Reconcile(Observed(planeA2))

	if rec.count("create") != 0 || rec.count("move") != 1 || rec.count("icon") != 1 {
		t.Fatalf("calls = %v", rec.calls)
	}
	got, ok := r.Tracked()
	if !ok {
		t.Fatal("slot empty after update")
	}
	if got.Latitude != planeA2.Latitude || got.Longitude != planeA2.Longitude ||
		got.Altitude != planeA2.Altitude || got.Track != planeA2.Track ||
		got.GroundSpeed != planeA2.GroundSpeed || got.AirSpeed != planeA2.AirSpeed ||
		got.VerticalSpeed != planeA2.VerticalSpeed {
		t.Errorf("mutable fields not overwritten: %+v", got)
	}
	if got.Aircraft == nil || got.Aircraft.Registration != "D-AXPL" {
		t.Errorf("identity lost on update: %+v", got.Aircraft)
	}
	for h, pos := range rec.live {
		if pos != planeA2.LonLat() {
			t.Errorf("marker %s at %v, want %v", h, pos, planeA2.LonLat())
		}
		if rec.icons[h] != Icon(planeA2, DefaultMaxAltitude) {
			t.Errorf("icon not recomputed from new observation")
		}
	}
}

func TestReconcileAdoptsLateIdentity(t *testing.T) {
	rec := newRecorder()
	r := NewReconciler(rec, rec)
	r.Reconcile(Observed(planeA2))
	r.Reconcile(Observed(planeA))

	got, _ := r.Tracked()
	if got.Aircraft == nil || got.Aircraft.ICAOType != "A320" {
		t.Errorf("identity = %+v", got.Aircraft)
	}
}

func TestReconcileSequenceCreateMoveRemove(t *testing.T) {
	rec := newRecorder()
	r := NewReconciler(rec, rec)

	r.Reconcile(Observed(planeA))
	r.Reconcile(Observed(planeA2))
	r.Reconcile(Absent())

	want := map[string]int{"create": 1, "move": 1, "icon": 1, "remove": 1, "center:10": 1}
	for call, n := range want {
		if rec.count(call) != n {
			t.Errorf("%s calls = %d, want %d (all: %v)", call, rec.count(call), n, rec.calls)
		}
	}
	if _, ok := r.Tracked(); ok {
		t.Error("slot not empty after Absent")
	}
	if len(rec.live) != 0 {
		t.Errorf("markers left on map: %v", rec.live)
	}
	if last := rec.rendered[len(rec.rendered)-1]; last != OfflineMessage {
		t.Errorf("last panel = %q", last)
	}
}

func TestReconcileRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		rec := newRecorder()
		r := NewReconciler(rec, rec, WithMaxAltitude(45000))
		var lastObserved bool
		for step := 0; step < 40; step++ {
			if rng.Intn(3) == 0 {
				r.Reconcile(Absent())
				lastObserved = false
			} else {
				o := planeA
				o.Altitude = float64(rng.Intn(50000))
				o.Track = float64(rng.Intn(720) - 360)
				r.Reconcile(Observed(o))
				lastObserved = true
			}
			_, ok := r.Tracked()
			if ok != lastObserved {
				t.Fatalf("run %d step %d: slot non-empty=%v, last observed=%v", run, step, ok, lastObserved)
			}
			if want := map[bool]int{true: 1, false: 0}[ok]; len(rec.live) != want {
				t.Fatalf("run %d step %d: %d markers, want %d", run, step, len(rec.live), want)
			}
		}
		if rec.count("center:10") > 1 {
			t.Fatalf("run %d: centered %d times", run, rec.count("center:10"))
		}
	}
}

func TestReconcileAgainstLayer(t *testing.T) {
	layer := mapview.NewLayer()
	r := NewReconciler(layer, layer)

	r.Reconcile(Observed(planeA))
	if layer.Len() != 1 {
		t.Fatalf("layer markers = %d", layer.Len())
	}
	if vs := layer.ViewState(); !vs.Centered || vs.Zoom != mapview.DefaultZoom || *vs.Center != planeA.LonLat() {
		t.Errorf("view state = %+v", vs)
	}
	if layer.Info() != InfoText(&planeA) {
		t.Errorf("layer info = %q", layer.Info())
	}

	r.Reconcile(Absent())
	if layer.Len() != 0 || layer.Info() != OfflineMessage {
		t.Errorf("layer not cleared: %d markers, info %q", layer.Len(), layer.Info())
	}
}
