package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort    string
	MetricsPort string
	GRPCPort    string
	RedisAddr   string
	RedisDB     int

	// Poller / reconciler
	LiveURL      string
	PollInterval time.Duration
	MaxAltitude  float64

	// Ventana en la que una posición recibida sigue "activa" en /live/
	SeenGap  time.Duration
	AuditDir string

	// Adaptadores de mapa remotos; vacío = deshabilitado
	RenderLinkAddr string
	RenderGRPCAddr string
}

func Load() Config {
	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9000"),
		GRPCPort:       getEnv("GRPC_PORT", "50051"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		LiveURL:        getEnv("LIVE_URL", "http://localhost:8080/live/"),
		PollInterval:   getEnvDuration("POLL_INTERVAL", 3000*time.Millisecond),
		MaxAltitude:    getEnvFloat("MAX_ALTITUDE", 40000),
		SeenGap:        getEnvDuration("SEEN_GAP", 30*time.Second),
		AuditDir:       getEnv("AUDIT_DIR", "logs"),
		RenderLinkAddr: getEnv("RENDER_LINK_ADDR", ""),
		RenderGRPCAddr: getEnv("RENDER_GRPC_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

// getEnvDuration acepta "3s", "1500ms" o un número entero de milisegundos.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
