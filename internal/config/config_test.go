package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %s, want 8000", cfg.Port)
	}
	if cfg.DefaultPageSize != 5 {
		t.Errorf("DefaultPageSize = %d, want 5", cfg.DefaultPageSize)
	}
	if cfg.StorageBackend != StorageLocal {
		t.Errorf("StorageBackend = %s, want local", cfg.StorageBackend)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "port = \"9100\"\npreview_rows = 20\nmedia_dir = \"/srv/media\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9200" {
		t.Errorf("Port = %s, want env override 9200", cfg.Port)
	}
	if cfg.PreviewRows != 20 {
		t.Errorf("PreviewRows = %d, want 20 from file", cfg.PreviewRows)
	}
	if cfg.MediaDir != "/srv/media" {
		t.Errorf("MediaDir = %s, want /srv/media", cfg.MediaDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	t.Run("bad integer", func(t *testing.T) {
		t.Setenv("PREVIEW_ROWS", "ten")
		if _, err := Load(); err == nil {
			t.Error("expected error for non-integer PREVIEW_ROWS")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "ftp")
		if _, err := Load(); err == nil {
			t.Error("expected error for unknown storage backend")
		}
	})
}
