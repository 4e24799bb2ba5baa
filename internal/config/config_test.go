package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output != "fits.csv" {
		t.Errorf("expected output fits.csv, got %s", cfg.Output)
	}
	if !cfg.Sorted {
		t.Error("sorted should default to true")
	}
	if cfg.AcceptanceCorrected {
		t.Error("acceptance correction should default to false")
	}
	if len(cfg.BackgroundMarkers) == 0 {
		t.Error("expected default background markers")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := "output: best_fits.csv\nacceptance_corrected: true\nbackground_markers: [Bkgd]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "best_fits.csv" {
		t.Errorf("output = %s", cfg.Output)
	}
	if !cfg.AcceptanceCorrected {
		t.Error("expected acceptance_corrected true")
	}
	if len(cfg.BackgroundMarkers) != 1 || cfg.BackgroundMarkers[0] != "Bkgd" {
		t.Errorf("markers = %v", cfg.BackgroundMarkers)
	}
	// untouched fields keep defaults
	if !cfg.Sorted {
		t.Error("sorted should stay true")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Live = true

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Live {
		t.Error("expected live flag to survive round trip")
	}
}
