package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig should not return nil")
	}
	if cfg.NamePrefix != "V-" {
		t.Errorf("NamePrefix should be 'V-', got %q", cfg.NamePrefix)
	}
	if cfg.MemoryMB != 1024 {
		t.Errorf("MemoryMB should be 1024, got %d", cfg.MemoryMB)
	}
	if cfg.CPUs != 1 {
		t.Errorf("CPUs should be 1, got %d", cfg.CPUs)
	}
	if cfg.SSHHostPort != 2800 || cfg.SSHGuestPort != 22 {
		t.Errorf("SSH forward should be 2800->22, got %d->%d", cfg.SSHHostPort, cfg.SSHGuestPort)
	}
	if cfg.AppHostPort != 8080 || cfg.AppGuestPort != 9000 {
		t.Errorf("app forward should be 8080->9000, got %d->%d", cfg.AppHostPort, cfg.AppGuestPort)
	}
	if cfg.BootWait != 60*time.Second {
		t.Errorf("BootWait should be 60s, got %s", cfg.BootWait)
	}
	if cfg.BootStrategy != BootStrategyFixed {
		t.Errorf("BootStrategy should be fixed, got %q", cfg.BootStrategy)
	}
	if !cfg.RequireImage {
		t.Error("RequireImage should be true by default")
	}
	if !strings.HasSuffix(cfg.SSHKeyPath, filepath.Join(".bakerx", "insecure_private_key")) {
		t.Errorf("SSHKeyPath should point at the bakerx key, got %q", cfg.SSHKeyPath)
	}
}

func TestBaseImage(t *testing.T) {
	cfg := DefaultConfig()

	want := filepath.Join(".bakerx", ".persist", "images", "bionic", "box.ovf")
	if got := cfg.BaseImage(); !strings.HasSuffix(got, want) {
		t.Errorf("BaseImage() = %q, want suffix %q", got, want)
	}

	cfg.ImagePath = "/images/custom.ovf"
	if got := cfg.BaseImage(); got != "/images/custom.ovf" {
		t.Errorf("BaseImage() with override = %q", got)
	}
}

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	if err != nil {
		t.Fatalf("GetPaths failed: %v", err)
	}

	if paths.BakerxDir == "" {
		t.Error("BakerxDir should not be empty")
	}
	if paths.ConfigDir == "" {
		t.Error("ConfigDir should not be empty")
	}
	if !filepath.IsAbs(paths.BakerxDir) {
		t.Error("BakerxDir should be absolute path")
	}
	if filepath.Base(paths.KeyPath()) != "insecure_private_key" {
		t.Errorf("KeyPath() = %q", paths.KeyPath())
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.MemoryMB != 1024 {
		t.Errorf("MemoryMB = %d, want 1024", cfg.MemoryMB)
	}
	if len(cfg.Packages) != 3 {
		t.Errorf("Packages = %v, want 3 defaults", cfg.Packages)
	}
	if cfg.BootWait != 60*time.Second {
		t.Errorf("BootWait = %s, want 60s", cfg.BootWait)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("V_MEMORY_MB", "2048")
	t.Setenv("V_BOOT_WAIT", "5s")
	t.Setenv("V_TIMING", "true")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.MemoryMB != 2048 {
		t.Errorf("MemoryMB = %d, want 2048", cfg.MemoryMB)
	}
	if cfg.BootWait != 5*time.Second {
		t.Errorf("BootWait = %s, want 5s", cfg.BootWait)
	}
	if !cfg.Timing {
		t.Error("Timing should be enabled by V_TIMING")
	}
}

func TestLoadConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "v")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	data := "cpus: 2\nboot_strategy: poll\npackages:\n  - git\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.CPUs != 2 {
		t.Errorf("CPUs = %d, want 2", cfg.CPUs)
	}
	if cfg.BootStrategy != BootStrategyPoll {
		t.Errorf("BootStrategy = %q, want poll", cfg.BootStrategy)
	}
	if len(cfg.Packages) != 1 || cfg.Packages[0] != "git" {
		t.Errorf("Packages = %v, want [git]", cfg.Packages)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
		wantFatal bool
	}{
		{"defaults", func(c *Config) {}, "", false},
		{"zero cpus", func(c *Config) { c.CPUs = 0 }, "CPUs", true},
		{"tiny memory", func(c *Config) { c.MemoryMB = 64 }, "MemoryMB", true},
		{"bad port", func(c *Config) { c.SSHHostPort = 70000 }, "SSHHostPort", true},
		{"port clash", func(c *Config) { c.AppHostPort = c.SSHHostPort }, "AppHostPort", true},
		{"bad strategy", func(c *Config) { c.BootStrategy = "magic" }, "BootStrategy", true},
		{"short wait", func(c *Config) { c.BootWait = time.Second }, "BootWait", false},
		{"image optional", func(c *Config) { c.RequireImage = false }, "RequireImage", false},
		{"empty prefix", func(c *Config) { c.NamePrefix = "" }, "NamePrefix", true},
		{"no packages", func(c *Config) { c.Packages = nil }, "Packages", true},
		{"blank package", func(c *Config) { c.Packages = []string{"git", " "} }, "Packages", true},
		{"unknown distro", func(c *Config) { c.Distro = "xenial" }, "Distro", false},
		{"unknown distro with image", func(c *Config) { c.Distro = "xenial"; c.ImagePath = "/images/box.ovf" }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			errs := Validate(cfg)

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want none", errs)
				}
				return
			}

			var found bool
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
					if e.Fatal != tt.wantFatal {
						t.Errorf("%s fatal = %v, want %v", e.Field, e.Fatal, tt.wantFatal)
					}
				}
			}
			if !found {
				t.Errorf("Validate() = %v, missing field %s", errs, tt.wantField)
			}
			if HasFatal(errs) != tt.wantFatal {
				t.Errorf("HasFatal() = %v, want %v", HasFatal(errs), tt.wantFatal)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	if got := FormatValidationErrors(nil); got != "" {
		t.Errorf("FormatValidationErrors(nil) = %q", got)
	}

	out := FormatValidationErrors([]ValidationError{
		{Field: "CPUs", Message: "too few", Fatal: true},
		{Field: "BootWait", Message: "short", Fatal: false},
	})
	if !strings.Contains(out, "Error [CPUs]: too few") {
		t.Errorf("missing fatal line in %q", out)
	}
	if !strings.Contains(out, "Warning [BootWait]: short") {
		t.Errorf("missing warning line in %q", out)
	}
}
