package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "POLL_INTERVAL", "MAX_ALTITUDE", "SEEN_GAP", "RENDER_LINK_ADDR", "REDIS_DB"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.MaxAltitude != 40000 {
		t.Errorf("MaxAltitude = %v", cfg.MaxAltitude)
	}
	if cfg.SeenGap != 30*time.Second {
		t.Errorf("SeenGap = %v", cfg.SeenGap)
	}
	if cfg.RenderLinkAddr != "" {
		t.Errorf("RenderLinkAddr = %q, want disabled", cfg.RenderLinkAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "1500")
	t.Setenv("SEEN_GAP", "1m")
	t.Setenv("MAX_ALTITUDE", "45000")
	t.Setenv("REDIS_DB", "3")
	cfg := Load()
	if cfg.PollInterval != 1500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.SeenGap != time.Minute {
		t.Errorf("SeenGap = %v", cfg.SeenGap)
	}
	if cfg.MaxAltitude != 45000 {
		t.Errorf("MaxAltitude = %v", cfg.MaxAltitude)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")
	t.Setenv("MAX_ALTITUDE", "-5")
	cfg := Load()
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.MaxAltitude != 40000 {
		t.Errorf("MaxAltitude = %v", cfg.MaxAltitude)
	}
}
