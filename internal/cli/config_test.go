package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	conf, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if conf.Render.LabelMode != "" || conf.Render.Format != "" || conf.Render.OnlySimpleRegions {
		t.Errorf("missing config should yield zero value, got %+v", conf)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "[render]\nlabel_mode = \"simple\"\nonly_simple_regions = true\nformat = \"svg\"\n"
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if conf.Render.LabelMode != "simple" {
		t.Errorf("LabelMode = %q, want %q", conf.Render.LabelMode, "simple")
	}
	if !conf.Render.OnlySimpleRegions {
		t.Error("OnlySimpleRegions = false, want true")
	}
	if conf.Render.Format != "svg" {
		t.Errorf("Format = %q, want %q", conf.Render.Format, "svg")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte("[render\nlabel_mode ="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}
