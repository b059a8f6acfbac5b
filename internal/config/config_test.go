package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/weft-ui/weft/internal/errors"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.Debug {
		t.Errorf("Debug should default to false")
	}
	if cfg.Bench.Boxes != DefaultBenchBoxes {
		t.Errorf("Bench.Boxes = %d, want %d", cfg.Bench.Boxes, DefaultBenchBoxes)
	}
	if cfg.Bench.Iterations != DefaultBenchIterations {
		t.Errorf("Bench.Iterations = %d, want %d", cfg.Bench.Iterations, DefaultBenchIterations)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("Expected error for missing weft.json")
	}
	we, ok := err.(*errors.WeftError)
	if !ok {
		t.Fatalf("error is %T, want *WeftError", err)
	}
	if we.Code != errors.CodeConfigNotFound {
		t.Errorf("Code = %q, want %q", we.Code, errors.CodeConfigNotFound)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Bench.Writes != DefaultBenchWrites {
		t.Errorf("Bench.Writes = %d, want default", cfg.Bench.Writes)
	}
}

func TestLoadAppliesDefaultsToSparseFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"debug": true, "tracer": "bench", "bench": {"boxes": 5}}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Errorf("Debug not read")
	}
	if cfg.Tracer != "bench" {
		t.Errorf("Tracer = %q", cfg.Tracer)
	}
	if cfg.Bench.Boxes != 5 {
		t.Errorf("Bench.Boxes = %d, want 5", cfg.Bench.Boxes)
	}
	// Unset fields fall back to defaults.
	if cfg.Bench.Writes != DefaultBenchWrites {
		t.Errorf("Bench.Writes = %d, want default", cfg.Bench.Writes)
	}
	if cfg.Path() == "" || cfg.Dir() != dir {
		t.Errorf("Path/Dir not recorded: %q / %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{bad`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatalf("Expected parse error")
	}
	we, ok := err.(*errors.WeftError)
	if !ok || we.Code != errors.CodeConfigParse {
		t.Errorf("error = %v, want %s", err, errors.CodeConfigParse)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Debug = true
	cfg.Bench.Iterations = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Debug || loaded.Bench.Iterations != 7 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}

	// Save without a path fails; after SaveTo it succeeds.
	fresh := New()
	if err := fresh.Save(); err == nil {
		t.Errorf("Save on pathless config should fail")
	}
	if err := loaded.Save(); err != nil {
		t.Errorf("Save after load: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.Bench.Writes = -1
	if err := cfg.Validate(); err == nil {
		t.Errorf("negative workload should fail validation")
	}
	cfg.Bench.Writes = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("zero workload should fail validation")
	}
}
