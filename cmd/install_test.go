package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"mirrorsync/internal/config"

	"github.com/spf13/viper"
)

func TestAutostartTargetFromEnvRoots(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("USERPROFILE", base)
	t.Chdir(base)

	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("MIRRORSYNC_SOURCE_ROOT", src)
	t.Setenv("MIRRORSYNC_DESTINATION_ROOT", dst)

	vp := viper.New()
	c, err := config.Load(vp, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	target, err := autostartTarget(c, vp.ConfigFileUsed())
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if target.ConfigPath != "" {
		t.Fatalf("config path = %q, want none", target.ConfigPath)
	}
	if target.SourceRoot != src || target.DestinationRoot != dst {
		t.Fatalf("roots = %q -> %q", target.SourceRoot, target.DestinationRoot)
	}
	if target.LogLevel != "INFO" {
		t.Fatalf("log level = %q", target.LogLevel)
	}
}

func TestAutostartTargetResolvesConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	c := config.Default
	c.SourceRoot = "/data"
	c.DestinationRoot = "/backup"

	target, err := autostartTarget(&c, "config.yaml")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if want := filepath.Join(base, "config.yaml"); target.ConfigPath != want {
		t.Fatalf("config path = %q, want %q", target.ConfigPath, want)
	}
	if target.SourceRoot != "/data" || target.DestinationRoot != "/backup" {
		t.Fatalf("roots = %q -> %q", target.SourceRoot, target.DestinationRoot)
	}
}
