package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Pointing XDG_CONFIG_HOME at a temp dir keeps the tests away from the
// real user config.
func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestPath(t *testing.T) {
	dir := isolateConfigDir(t)

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() returned error: %v", err)
	}
	if path != filepath.Join(dir, dirName, fileName) {
		t.Errorf("unexpected config path %s", path)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	isolateConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != DefaultURL {
		t.Errorf("expected ServerURL %s, got %s", DefaultURL, cfg.ServerURL)
	}
	if cfg.HasToken() {
		t.Error("expected no token in the default config")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateConfigDir(t)

	saved := &Config{
		ServerURL: "https://skylock.example.com",
		Token:     "test-token-123",
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != saved.ServerURL {
		t.Errorf("expected ServerURL %s, got %s", saved.ServerURL, cfg.ServerURL)
	}
	if cfg.Token != saved.Token {
		t.Errorf("expected Token %s, got %s", saved.Token, cfg.Token)
	}
	if !cfg.HasToken() {
		t.Error("expected HasToken to be true")
	}
}

func TestLoadFillsEmptyServerURL(t *testing.T) {
	isolateConfigDir(t)

	if err := Save(&Config{Token: "only-a-token"}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != DefaultURL {
		t.Errorf("expected default ServerURL, got %s", cfg.ServerURL)
	}
}

func TestClear(t *testing.T) {
	isolateConfigDir(t)

	if err := Save(&Config{ServerURL: DefaultURL, Token: "tok"}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}

	path, _ := Path()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected config file to be removed")
	}

	// Clearing an already-missing config is not an error.
	if err := Clear(); err != nil {
		t.Fatalf("Clear() on missing file returned error: %v", err)
	}
}
