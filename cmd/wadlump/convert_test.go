// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"wadlump-cli/internal/config"
	"wadlump-cli/internal/testutil"
	"wadlump-cli/internal/wad"

	"github.com/charmbracelet/log"
)

// setupConvert resets the convert flag set and the shared config/logger.
// Tests here are not parallel: they mutate package-level command state.
func setupConvert(t *testing.T) {
	t.Helper()
	origOutput, origDir, origInPlace := convertOutput, convertOutputDir, convertInPlace
	origForce := convertForce
	origCfg, origLogger := cfg, logger
	t.Cleanup(func() {
		convertOutput, convertOutputDir, convertInPlace = origOutput, origDir, origInPlace
		convertForce = origForce
		cfg, logger = origCfg, origLogger
	})
	convertOutput, convertOutputDir, convertInPlace = "", "", false
	convertForce = false
	cfg = config.DefaultConfig()
	logger = log.New(io.Discard)
}

func TestRunConvert(t *testing.T) {
	t.Run("in-place conflicts with other outputs", func(t *testing.T) {
		setupConvert(t)
		convertInPlace = true
		convertOutput = "out.wad"

		err := runConvert(convertCmd, []string{"in.wad"})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 1 {
			t.Errorf("runConvert() error = %v, want ExitError with code 1", err)
		}
	})

	t.Run("no output mode is fatal", func(t *testing.T) {
		setupConvert(t)

		err := runConvert(convertCmd, []string{"in.wad"})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Errorf("runConvert() error = %v, want ExitError", err)
		}
	})

	t.Run("explode then rebuild", func(t *testing.T) {
		setupConvert(t)
		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", wad.TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
			{Name: "THINGS", Data: []byte("xy")},
		})

		dir := filepath.Join(t.TempDir(), "exploded")
		convertOutputDir = dir
		if err := runConvert(convertCmd, []string{src}); err != nil {
			t.Fatalf("runConvert(explode) error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, wad.OrderFileName)); err != nil {
			t.Fatalf("order side-file missing: %v", err)
		}

		convertOutputDir = ""
		rebuilt := filepath.Join(t.TempDir(), "rebuilt.wad")
		convertOutput = rebuilt
		if err := runConvert(convertCmd, []string{dir}); err != nil {
			t.Fatalf("runConvert(rebuild) error = %v", err)
		}

		m, err := wad.ReadContainer(rebuilt, logger)
		if err != nil {
			t.Fatalf("ReadContainer(rebuilt) error = %v", err)
		}
		lumps := m.Lumps()
		if len(lumps) != 2 || lumps[0].Name != "MAP01" || lumps[1].Name != "THINGS" {
			t.Errorf("rebuilt lumps = %v, want [MAP01 THINGS]", lumps)
		}
	})

	t.Run("change tokens apply on the way", func(t *testing.T) {
		setupConvert(t)
		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", wad.TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
			{Name: "DEMO1", Data: []byte("demo")},
		})

		out := filepath.Join(t.TempDir(), "out.wad")
		convertOutput = out
		if err := runConvert(convertCmd, []string{src, "DEMO?"}); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}

		m, err := wad.ReadContainer(out, logger)
		if err != nil {
			t.Fatal(err)
		}
		lumps := m.Lumps()
		if len(lumps) != 1 || lumps[0].Name != "MAP01" {
			t.Errorf("lumps = %v, want [MAP01]", lumps)
		}
	})

	t.Run("config seeds flags not given explicitly", func(t *testing.T) {
		setupConvert(t)
		cfg.PreserveCase = true
		cfg.LumpsOnly = true
		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", wad.TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
		})

		dir := filepath.Join(t.TempDir(), "exploded")
		convertOutputDir = dir
		if err := runConvert(convertCmd, []string{src}); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "0-MAP01")); err != nil {
			t.Errorf("expected case-preserved lumps-only region file: %v", err)
		}
	})

	t.Run("explicit flag overrides config", func(t *testing.T) {
		setupConvert(t)
		cfg.PreserveCase = true
		cfg.LumpsOnly = true
		caseFlag := convertCmd.Flags().Lookup("case")
		if err := caseFlag.Value.Set("false"); err != nil {
			t.Fatal(err)
		}
		caseFlag.Changed = true
		t.Cleanup(func() { caseFlag.Changed = false })

		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", wad.TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
		})
		dir := filepath.Join(t.TempDir(), "exploded")
		convertOutputDir = dir
		if err := runConvert(convertCmd, []string{src}); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "0-map01")); err != nil {
			t.Errorf("expected folded-case region file: %v", err)
		}
	})

	t.Run("in-place requires a container input", func(t *testing.T) {
		setupConvert(t)
		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", wad.TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
		})
		dir := filepath.Join(t.TempDir(), "exploded")
		convertOutputDir = dir
		if err := runConvert(convertCmd, []string{src}); err != nil {
			t.Fatal(err)
		}

		convertOutputDir = ""
		convertInPlace = true
		err := runConvert(convertCmd, []string{dir})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Errorf("runConvert(in-place on dir) error = %v, want ExitError", err)
		}
	})
}
