package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csvdash/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MaxPoints != 100 {
		t.Fatalf("expected max_points default 100, got %d", c.MaxPoints)
	}
	if c.Model == "" {
		t.Fatalf("expected a default model")
	}
	if len(c.ExcludedKeys) == 0 {
		t.Fatalf("expected a default excluded key list")
	}
	if c.HTTPTimeoutSec != 60 {
		t.Fatalf("expected http timeout default 60, got %d", c.HTTPTimeoutSec)
	}
}

func TestLoadCredentialsFromEnvironment(t *testing.T) {
	// The credential keys have no file-backed value in a fresh install, so
	// they must still be resolvable from the environment alone.
	t.Setenv("CSVDASH_API_KEY", "sk-from-env")
	t.Setenv("CSVDASH_ACCESS_PASSWORD", "env-pass")
	t.Setenv("CSVDASH_MODEL", "env/model")

	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.APIKey != "sk-from-env" {
		t.Fatalf("CSVDASH_API_KEY not picked up: %q", c.APIKey)
	}
	if c.AccessPassword != "env-pass" {
		t.Fatalf("CSVDASH_ACCESS_PASSWORD not picked up: %q", c.AccessPassword)
	}
	if c.Model != "env/model" {
		t.Fatalf("CSVDASH_MODEL not picked up: %q", c.Model)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &config.Global{
		APIKey:         "sk-test",
		Model:          "test/model",
		MaxPoints:      25,
		ExcludedKeys:   []string{"rowid"},
		AccessPassword: "hunter2",
		HTTPTimeoutSec: 5,
		ListenAddr:     "127.0.0.1:9999",
	}
	if err := config.Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.APIKey != "sk-test" || out.Model != "test/model" || out.MaxPoints != 25 {
		t.Fatalf("round trip mismatch: %#v", out)
	}
	if out.AccessPassword != "hunter2" {
		t.Fatalf("access password lost: %#v", out)
	}
	if len(out.ExcludedKeys) != 1 || out.ExcludedKeys[0] != "rowid" {
		t.Fatalf("excluded keys lost: %#v", out.ExcludedKeys)
	}
}

func TestFileOnDiskIsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := config.Save(&config.Global{Model: "m"}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "model: m") {
		t.Fatalf("expected yaml output, got:\n%s", b)
	}
}
