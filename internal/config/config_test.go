package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Root == "" || cfg.Dest == "" {
		t.Errorf("Root = %q, Dest = %q, expected non-empty defaults", cfg.Root, cfg.Dest)
	}
	if cfg.CacheMinutes != 30 {
		t.Errorf("CacheMinutes = %d, expected 30", cfg.CacheMinutes)
	}
	if cfg.HasPreset() {
		t.Error("default config should have no preset")
	}
}

func TestLoadMissingConfig(t *testing.T) {
	tempDir := t.TempDir()

	// Save original HOME and restore after
	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	// Load config - should return defaults when file missing
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed for missing config: %v", err)
	}
	if cfg.CacheMinutes != 30 {
		t.Errorf("Expected default cache minutes, got %d", cfg.CacheMinutes)
	}
}

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	configDir := filepath.Join(tempDir, ".photoarc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configYAML := strings.Join([]string{
		"root: /archive/photos",
		"dest: /archive/synced",
		"tag: holiday",
		"preset:",
		"  year: 2021",
		"  month: 3",
		"exact_path: false",
	}, "\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != "/archive/photos" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.Tag != "holiday" {
		t.Errorf("Tag = %q", cfg.Tag)
	}
	if cfg.Preset.Year != 2021 || cfg.Preset.Month != 3 || cfg.Preset.Day != 0 {
		t.Errorf("Preset = %+v", cfg.Preset)
	}
	if !cfg.HasPreset() {
		t.Error("HasPreset = false with a year set")
	}
}

func TestLoadRejectsInvalidPreset(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	configDir := filepath.Join(tempDir, ".photoarc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	bad := "preset:\n  month: 13\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(bad), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load accepted month 13")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	cfg := DefaultConfig()
	cfg.Tag = "family"
	cfg.Preset.Year = 2019
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Tag != "family" || loaded.Preset.Year != 2019 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		path     string
		expected string
	}{
		{"~/Pictures", filepath.Join(home, "Pictures")},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.path); got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}
