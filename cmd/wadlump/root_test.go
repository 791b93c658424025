// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"wadlump-cli/internal/config"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev builds say so", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestColorScheme(t *testing.T) {
	// Not parallel: subtests mutate the package-level cfg var.

	t.Run("configured scheme is used", func(t *testing.T) {
		origCfg := cfg
		t.Cleanup(func() { cfg = origCfg })

		cfg = config.DefaultConfig()
		cfg.UI.ColorScheme = "notty"
		if got := colorScheme(); got != "notty" {
			t.Errorf("colorScheme() = %q, want %q", got, "notty")
		}
	})

	t.Run("falls back to auto", func(t *testing.T) {
		origCfg := cfg
		t.Cleanup(func() { cfg = origCfg })

		cfg = nil
		if got := colorScheme(); got != "auto" {
			t.Errorf("colorScheme() = %q, want %q", got, "auto")
		}
		cfg = &config.Config{}
		if got := colorScheme(); got != "auto" {
			t.Errorf("colorScheme() with empty scheme = %q, want %q", got, "auto")
		}
	})
}
