package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Polls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xplogd_polls_total",
		Help: "Consultas a /live/ por resultado (observed, absent, error)",
	}, []string{"result"})
	PollLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xplogd_poll_latency_seconds",
		Help:    "Latencia de cada consulta a /live/",
		Buckets: prometheus.DefBuckets,
	})
	MarkerOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xplogd_marker_ops_total",
		Help: "Operaciones aplicadas sobre el marcador por tipo",
	}, []string{"op"})
	Tracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "xplogd_tracked",
		Help: "1 si hay un avión en el mapa, 0 si no",
	})
	MarkerDisplacement = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xplogd_marker_displacement_meters",
		Help:    "Distancia recorrida por el marcador entre actualizaciones",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})
	AdapterErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xplogd_adapter_errors_total",
		Help: "Errores de los adaptadores remotos de mapa",
	}, []string{"adapter"})
	PositionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xplogd_positions_ingested_total",
		Help: "Posiciones xplogd aceptadas en /tracking/",
	})
	IngestRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xplogd_ingest_rejects_total",
		Help: "Frames rechazados en /tracking/ por motivo",
	}, []string{"reason"})
	RedisErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xplogd_redis_errors_total",
		Help: "Errores al leer o escribir posiciones en Redis",
	})
)

func ObservePollLatency(start time.Time) {
	PollLatency.Observe(time.Since(start).Seconds())
}

// NewMetricsServer expone /metrics y /healthz; el llamador decide cuándo
// arrancarlo y apagarlo.
func NewMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
