package ingest

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"xplogd-live/internal/codec"
	"xplogd-live/internal/observability"
	"xplogd-live/internal/pipeline"
	"xplogd-live/internal/poller"
	"xplogd-live/internal/store"
)

var frame = codec.Frame{
	ICAOType: "C172", Registration: "N172XP",
	Latitude: 37.5, Longitude: -122.25, AltitudeM: 1000, TrackDeg: 90.9,
	GroundSpeedMS: 50, AirSpeedMS: 48, VerticalSpeedMS: 2.5,
}

func newTestServer(t *testing.T, auditDir string) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := store.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 30*time.Second)
	t.Cleanup(func() { _ = s.Close() })

	r := chi.NewRouter()
	NewHandler(s, observability.NopLogger(), auditDir).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mr
}

func post(t *testing.T, url, ctype string, body []byte) int {
	t.Helper()
	res, err := http.Post(url+"/tracking/", ctype, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	return res.StatusCode
}

func TestLiveNotFoundWhenIdle(t *testing.T) {
	srv, _ := newTestServer(t, "")
	res, err := http.Get(srv.URL + "/live/")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.StatusCode)
	}
}

func TestTrackingThenLive(t *testing.T) {
	dir := t.TempDir()
	srv, mr := newTestServer(t, dir)

	if code := post(t, srv.URL, codec.ContentType, codec.BuildXplogd(frame)); code != http.StatusAccepted {
		t.Fatalf("POST status = %d, want 202", code)
	}

	ev := poller.New(srv.URL+"/live/", time.Second, nil).Fetch(context.Background())
	o, ok := ev.Observation()
	if !ok {
		t.Fatal("poller saw no aircraft")
	}
	if o.Altitude != 3280 || o.Track != 90 || o.GroundSpeed != 97 || o.AirSpeed != 93 || o.VerticalSpeed != 492 {
		t.Errorf("observation = %+v", o)
	}
	if o.Aircraft == nil || o.Aircraft.ICAOType != "C172" || o.Aircraft.Registration != "N172XP" {
		t.Errorf("aircraft = %+v", o.Aircraft)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Errorf("audit dir entries = %v, err %v", entries, err)
	}

	mr.FastForward(31 * time.Second)
	if ev := poller.New(srv.URL+"/live/", time.Second, nil).Fetch(context.Background()); !ev.IsAbsent() {
		t.Error("position still live after the seen gap")
	}
}

func TestTrackingRejects(t *testing.T) {
	srv, _ := newTestServer(t, "")
	bad := frame
	bad.Latitude = 120

	tests := []struct {
		name  string
		ctype string
		body  []byte
	}{
		{"content type", "text/plain", codec.BuildXplogd(frame)},
		{"short frame", codec.ContentType, []byte("1\nC172\n")},
		{"bad version", codec.ContentType, bytes.Replace(codec.BuildXplogd(frame), []byte("1\n"), []byte("9\n"), 1)},
		{"bad coords", codec.ContentType, codec.BuildXplogd(bad)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := post(t, srv.URL, tt.ctype, tt.body); code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
		})
	}
}

type brokenStore struct{}

func (brokenStore) SavePosition(context.Context, *pipeline.Position) error {
	return errors.New("connection refused")
}

func (brokenStore) ActivePosition(context.Context) (*pipeline.Position, error) {
	return nil, errors.New("connection refused")
}

func TestStoreFailures(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(brokenStore{}, observability.NopLogger(), "").Routes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	if code := post(t, srv.URL, codec.ContentType, codec.BuildXplogd(frame)); code != http.StatusServiceUnavailable {
		t.Errorf("POST status = %d, want 503", code)
	}
	res, err := http.Get(srv.URL + "/live/")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("GET status = %d, want 503", res.StatusCode)
	}
}
