package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}

	if cfg.ScrapeTimeoutMS != 5000 {
		t.Errorf("ScrapeTimeoutMS = %d; want 5000", cfg.ScrapeTimeoutMS)
	}
	if cfg.Strict {
		t.Error("Strict = true; want false by default")
	}
	if cfg.PineIDAttr != "data-script-id-part" {
		t.Errorf("PineIDAttr = %q; want data-script-id-part", cfg.PineIDAttr)
	}
	if cfg.IndicatorsFile == "" || cfg.SessionFile == "" {
		t.Error("expected non-empty default file paths")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TV_SCRAPE_TIMEOUT_MS", "750")
	t.Setenv("TV_STRICT", "true")
	t.Setenv("TV_PORT_CANDIDATES", "127.0.0.1:9001, 127.0.0.1:9002")
	t.Setenv("TV_INDICATORS_FILE", "/tmp/ind.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}

	if cfg.ScrapeTimeoutMS != 750 {
		t.Errorf("ScrapeTimeoutMS = %d; want 750", cfg.ScrapeTimeoutMS)
	}
	if !cfg.Strict {
		t.Error("Strict = false; want true")
	}
	if cfg.IndicatorsFile != "/tmp/ind.json" {
		t.Errorf("IndicatorsFile = %q; want /tmp/ind.json", cfg.IndicatorsFile)
	}
	want := []string{"127.0.0.1:9001", "127.0.0.1:9002"}
	if len(cfg.PortCandidates) != len(want) {
		t.Fatalf("PortCandidates = %v; want %v", cfg.PortCandidates, want)
	}
	for i := range want {
		if cfg.PortCandidates[i] != want[i] {
			t.Errorf("PortCandidates[%d] = %q; want %q", i, cfg.PortCandidates[i], want[i])
		}
	}
}

func TestGetEnvIntOrDefaultIgnoresGarbage(t *testing.T) {
	t.Setenv("TV_NAV_TIMEOUT_MS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	if cfg.NavTimeoutMS != 20000 {
		t.Errorf("NavTimeoutMS = %d; want default 20000", cfg.NavTimeoutMS)
	}
}
