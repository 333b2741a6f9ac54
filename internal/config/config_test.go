// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ContainerEngine != ContainerEngineAuto {
		t.Errorf("expected auto engine, got %q", cfg.ContainerEngine)
	}
	if cfg.Root != "." {
		t.Errorf("expected root '.', got %q", cfg.Root)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", cfg.MaxDepth)
	}
	if cfg.UI.Verbose {
		t.Error("expected verbose off by default")
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
container_engine: "podman"
registry: "ghcr.io/acme"
max_depth: 4
ui: {
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("expected podman, got %q", cfg.ContainerEngine)
	}
	if cfg.Registry != "ghcr.io/acme" {
		t.Errorf("expected registry ghcr.io/acme, got %q", cfg.Registry)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("expected max depth 4, got %d", cfg.MaxDepth)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose on")
	}
}

func TestLoad_ExplicitConfigFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(path, []byte(`registry: "r.example.com"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Registry != "r.example.com" {
		t.Errorf("expected registry from custom file, got %q", cfg.Registry)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "absent.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidCUESyntax(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `container_engine: "docker`)

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Fatal("expected error for invalid CUE syntax")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown engine", content: `container_engine: "buildah"`},
		{name: "negative max depth", content: `max_depth: -1`},
		{name: "wrong type", content: `max_depth: "two"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, tt.content)

			if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
				t.Fatal("expected schema validation error")
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `registry: "from-file.example.com"`)
	t.Setenv("STEVEDORE_REGISTRY", "from-env.example.com")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Registry != "from-env.example.com" {
		t.Errorf("expected env to win, got %q", cfg.Registry)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	want := &Config{
		ContainerEngine: ContainerEnginePodman,
		Registry:        "ghcr.io/acme",
		Root:            "./services",
		MaxDepth:        3,
		UI:              UIConfig{Verbose: true},
	}

	dir := t.TempDir()
	writeConfigFile(t, dir, GenerateCUE(want))

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestGenerateCUE_OmitsEmptyRegistry(t *testing.T) {
	content := GenerateCUE(DefaultConfig())
	if strings.Contains(content, "registry:") {
		t.Errorf("expected empty registry omitted, got:\n%s", content)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file created: %v", err)
	}

	// A second call must not overwrite the existing file.
	if err := os.WriteFile(path, []byte(`registry: "kept.example.com"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "kept.example.com") {
		t.Error("expected existing config preserved")
	}
}

func TestSave_RoundTrips(t *testing.T) {
	// A nested path exercises directory creation on save.
	dir := filepath.Join(t.TempDir(), "nested", "stevedore")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.Registry = "ghcr.io/acme"
	cfg.MaxDepth = 4
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	SetConfigDirOverride(dir) // clear the cache
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Registry != "ghcr.io/acme" {
		t.Errorf("expected saved registry, got %q", loaded.Registry)
	}
	if loaded.MaxDepth != 4 {
		t.Errorf("expected saved max depth 4, got %d", loaded.MaxDepth)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stevedore")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected directory created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}
