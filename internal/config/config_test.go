package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BUS_API_KEY", "key-1")
	t.Setenv("BUS_ARR_API_KEY", "")
	t.Setenv("COLLECTOR_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ArrServiceKey != "key-1" {
		t.Errorf("ArrServiceKey = %q, expected it to default to BUS_API_KEY", cfg.ArrServiceKey)
	}
	if cfg.StorageBackend != "file" {
		t.Errorf("StorageBackend = %q, expected %q", cfg.StorageBackend, "file")
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, expected transport default (0)", cfg.HTTPTimeout)
	}
	if cfg.Profile.Express.ProbeCheckpointEvery != 5 {
		t.Errorf("ProbeCheckpointEvery = %d, expected 5", cfg.Profile.Express.ProbeCheckpointEvery)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BUS_API_KEY", "key-1")
	t.Setenv("BUS_ARR_API_KEY", "arr-key")
	t.Setenv("HTTP_TIMEOUT", "15")
	t.Setenv("EXPRESS_REPLACE", "true")
	t.Setenv("INTERCITY_ENFORCE_WINDOW", "not-a-bool")
	t.Setenv("COLLECTOR_CONFIG", "")
	t.Setenv("CORS_ORIGINS", " https://bus.example.kr, ,http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ArrServiceKey != "arr-key" {
		t.Errorf("ArrServiceKey = %q, expected %q", cfg.ArrServiceKey, "arr-key")
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, expected 15s", cfg.HTTPTimeout)
	}
	if !cfg.ExpressReplace {
		t.Error("ExpressReplace should be true")
	}
	if cfg.EnforceRunWindow {
		t.Error("unparsable bool should fall back to the default (false)")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://bus.example.kr" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestRequireServiceKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireServiceKey(); !errors.Is(err, ErrMissingServiceKey) {
		t.Errorf("RequireServiceKey() = %v, expected ErrMissingServiceKey", err)
	}

	cfg.ServiceKey = "k"
	if err := cfg.RequireServiceKey(); err != nil {
		t.Errorf("RequireServiceKey() = %v, expected nil", err)
	}
}

func TestLoadProfile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collector.yml")
	yml := `
delays:
  schedulesMs: 80
intercity:
  majors:
    ids: [NAI0511601, NAI4124601]
    namePatterns: []
  runWindow:
    startHour: 22
    endHour: 4
express:
  identityMap:
    "300": NAEK300
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}

	if p.Delays.SchedulesMS != 80 {
		t.Errorf("SchedulesMS = %d, expected 80", p.Delays.SchedulesMS)
	}
	if p.Delays.ProbeMS != 30 {
		t.Errorf("ProbeMS = %d, expected default 30", p.Delays.ProbeMS)
	}
	if len(p.Intercity.Majors.IDs) != 2 {
		t.Errorf("intercity major ids = %v, expected 2 entries", p.Intercity.Majors.IDs)
	}
	if len(p.Intercity.Majors.NamePatterns) != 0 {
		t.Errorf("intercity name patterns = %v, expected none", p.Intercity.Majors.NamePatterns)
	}
	if p.Intercity.RunWindow.StartHour != 22 || p.Intercity.RunWindow.EndHour != 4 {
		t.Errorf("RunWindow = %+v, expected 22-4", p.Intercity.RunWindow)
	}
	if len(p.Express.Majors.NamePatterns) == 0 {
		t.Error("express name patterns should keep their defaults")
	}
	if p.Express.IdentityMap["300"] != "NAEK300" {
		t.Errorf("IdentityMap = %v, expected 300 -> NAEK300", p.Express.IdentityMap)
	}
}

func TestLoadProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"negative delay", "delays:\n  probeMs: -1\n"},
		{"zero checkpoint", "express:\n  checkpointEvery: 0\n"},
		{"hour out of range", "intercity:\n  runWindow:\n    startHour: 30\n"},
		{"malformed yaml", "delays: [\n"},
		{"non-numeric short code", "express:\n  identityMap:\n    abc: NAEK010\n"},
		{"empty full id", "express:\n  identityMap:\n    \"010\": \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "collector.yml")
			if err := os.WriteFile(path, []byte(tt.yml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadProfile(path); err == nil {
				t.Errorf("LoadProfile should reject %s", tt.name)
			}
		})
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing profile should not be an error: %v", err)
	}
	if len(p.Intercity.Majors.IDs) == 0 {
		t.Error("missing profile should yield the default intercity majors")
	}
}
