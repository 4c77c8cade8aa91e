package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Index.Includes) == 0 {
		t.Error("expected default include patterns")
	}
	hasC := false
	for _, pattern := range cfg.Index.Includes {
		if pattern == "**/*.c" {
			hasC = true
		}
	}
	if !hasC {
		t.Errorf("expected **/*.c in includes, got %v", cfg.Index.Includes)
	}
	if cfg.Watch.DebounceMillis != 500 {
		t.Errorf("expected DebounceMillis=500, got %d", cfg.Watch.DebounceMillis)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "codemap.yaml")

	content := `
index:
  includes: ["src/**/*.c"]
  workers: 4
watch:
  debounce_millis: 100
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Index.Includes) != 1 || cfg.Index.Includes[0] != "src/**/*.c" {
		t.Errorf("expected overridden includes, got %v", cfg.Index.Includes)
	}
	if cfg.Index.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", cfg.Index.Workers)
	}
	if cfg.Watch.DebounceMillis != 100 {
		t.Errorf("expected DebounceMillis=100, got %d", cfg.Watch.DebounceMillis)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "codemap.yaml")

	content := `
index:
  workers: 8
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Index.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", cfg.Index.Workers)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "codemap.yaml")

	cfg := DefaultConfig()
	cfg.Index.Workers = 3
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Index.Workers != 3 {
		t.Errorf("expected Workers=3 after round trip, got %d", loaded.Index.Workers)
	}
}

func TestMapDBPath(t *testing.T) {
	path := MapDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".codemap", "map.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
