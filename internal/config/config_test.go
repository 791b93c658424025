// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Tests in this file mutate the package-level overrides, so they do not
// run in parallel.

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when no config file exists", func(t *testing.T) {
		withConfigDir(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.PreserveCase || cfg.Namespaces || cfg.LumpsOnly {
			t.Errorf("boolean defaults = %+v, want all false", cfg)
		}
		if cfg.UI.ColorScheme != "auto" {
			t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, "auto")
		}
		if cfg.Groups == nil {
			t.Error("Groups = nil, want empty map")
		}
	})

	t.Run("CUE file overrides defaults", func(t *testing.T) {
		dir := withConfigDir(t)
		content := `
preserve_case: true
ui: color_scheme: "dark"
groups: demos: ["DEMO1", "DEMO2"]
`
		if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !cfg.PreserveCase {
			t.Error("PreserveCase = false, want true")
		}
		if cfg.UI.ColorScheme != "dark" {
			t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, "dark")
		}
		if got := cfg.Groups["demos"]; len(got) != 2 || got[0] != "DEMO1" {
			t.Errorf("Groups[demos] = %v, want [DEMO1 DEMO2]", got)
		}
	})

	t.Run("schema violation is rejected", func(t *testing.T) {
		dir := withConfigDir(t)
		content := `ui: color_scheme: "neon"`
		if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want schema violation")
		}
	})

	t.Run("invalid CUE syntax is rejected", func(t *testing.T) {
		dir := withConfigDir(t)
		if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte("{{{"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want CUE syntax error")
		}
	})

	t.Run("explicit config path must exist", func(t *testing.T) {
		SetConfigFilePathOverride(filepath.Join(t.TempDir(), "missing.cue"))
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want file not found")
		}
	})
}

func TestConfigFilePath(t *testing.T) {
	t.Run("uses the directory override", func(t *testing.T) {
		dir := withConfigDir(t)

		got, err := ConfigFilePath()
		if err != nil {
			t.Fatalf("ConfigFilePath() error = %v", err)
		}
		want := filepath.Join(dir, "config.cue")
		if got != want {
			t.Errorf("ConfigFilePath() = %q, want %q", got, want)
		}
	})

	t.Run("file path override wins", func(t *testing.T) {
		SetConfigFilePathOverride("/tmp/custom.cue")
		t.Cleanup(Reset)

		got, err := ConfigFilePath()
		if err != nil {
			t.Fatalf("ConfigFilePath() error = %v", err)
		}
		if got != "/tmp/custom.cue" {
			t.Errorf("ConfigFilePath() = %q, want %q", got, "/tmp/custom.cue")
		}
	})
}
