// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"wadlump-cli/internal/testutil"
)

func TestReadContainer(t *testing.T) {
	t.Parallel()

	t.Run("reads header, lumps, and directory", func(t *testing.T) {
		t.Parallel()

		path := testutil.WriteContainer(t, t.TempDir(), "test.wad", TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
			{Name: "THINGS", Data: []byte("xy")},
		})

		m, err := ReadContainer(path, testLogger())
		if err != nil {
			t.Fatalf("ReadContainer() error = %v", err)
		}
		if m.Type != TypePWAD {
			t.Errorf("Type = %q, want %q", m.Type, TypePWAD)
		}
		if m.BackingPath != path {
			t.Errorf("BackingPath = %q, want %q", m.BackingPath, path)
		}

		var names []string
		for _, r := range m.Regions() {
			names = append(names, r.Name)
		}
		want := []string{HeaderName, "MAP01", "THINGS", DirectoryName}
		if len(names) != len(want) {
			t.Fatalf("region names = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("region[%d] = %q, want %q", i, names[i], want[i])
			}
		}

		lumps := m.Lumps()
		if lumps[0].Offset != 12 || lumps[0].Size != 4 {
			t.Errorf("MAP01 = (%d, %d), want (12, 4)", lumps[0].Offset, lumps[0].Size)
		}
		if lumps[1].Offset != 16 || lumps[1].Size != 2 {
			t.Errorf("THINGS = (%d, %d), want (16, 2)", lumps[1].Offset, lumps[1].Size)
		}
	})

	t.Run("unrecognized type tag is fatal", func(t *testing.T) {
		t.Parallel()

		path := testutil.WriteContainer(t, t.TempDir(), "bad.wad", "ZWAD", nil)
		if _, err := ReadContainer(path, testLogger()); err == nil {
			t.Error("ReadContainer() error = nil, want type tag error")
		}
	})

	t.Run("zero-offset entries inherit the running offset", func(t *testing.T) {
		t.Parallel()

		b := testutil.BuildContainer(TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
			{Name: "MARKER"},
		})
		// Zero out the marker's stored offset; it should inherit 16.
		dirOffset := binary.LittleEndian.Uint32(b[8:12])
		binary.LittleEndian.PutUint32(b[dirOffset+16:dirOffset+20], 0)
		path := filepath.Join(t.TempDir(), "marker.wad")
		if err := os.WriteFile(path, b, 0o644); err != nil {
			t.Fatal(err)
		}

		m, err := ReadContainer(path, testLogger())
		if err != nil {
			t.Fatalf("ReadContainer() error = %v", err)
		}
		lumps := m.Lumps()
		if len(lumps) != 2 {
			t.Fatalf("len(Lumps()) = %d, want 2", len(lumps))
		}
		if lumps[1].Name != "MARKER" || lumps[1].Offset != 16 {
			t.Errorf("marker = (%q, %d), want (MARKER, 16)", lumps[1].Name, lumps[1].Offset)
		}
	})

	t.Run("unreferenced bytes become gap regions", func(t *testing.T) {
		t.Parallel()

		// Layout: header, lump at 12..16, 4 orphaned bytes, directory at 20.
		b := testutil.BuildContainer(TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
		})
		b = append(b[:16], append([]byte("GAP!"), b[16:]...)...)
		binary.LittleEndian.PutUint32(b[8:12], 20)
		path := filepath.Join(t.TempDir(), "gap.wad")
		if err := os.WriteFile(path, b, 0o644); err != nil {
			t.Fatal(err)
		}

		m, err := ReadContainer(path, testLogger())
		if err != nil {
			t.Fatalf("ReadContainer() error = %v", err)
		}
		var gaps []*Region
		for _, r := range m.Regions() {
			if r.Name == GapName {
				gaps = append(gaps, r)
			}
		}
		if len(gaps) != 1 {
			t.Fatalf("gap count = %d, want 1", len(gaps))
		}
		if gaps[0].Offset != 16 || gaps[0].Size != 4 {
			t.Errorf("gap = (%d, %d), want (16, 4)", gaps[0].Offset, gaps[0].Size)
		}
	})
}

func TestReadDirectory(t *testing.T) {
	t.Parallel()

	t.Run("round-trips an exploded directory", func(t *testing.T) {
		t.Parallel()

		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", TypeIWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
			{Name: "THINGS", Data: []byte("xy")},
		})
		m, err := ReadContainer(src, testLogger())
		if err != nil {
			t.Fatalf("ReadContainer() error = %v", err)
		}

		dir := filepath.Join(t.TempDir(), "out")
		if err := WriteDirectory(m, dir, WriteOptions{}, testLogger()); err != nil {
			t.Fatalf("WriteDirectory() error = %v", err)
		}

		got, captured, err := ReadDirectory(dir, testLogger())
		if err != nil {
			t.Fatalf("ReadDirectory() error = %v", err)
		}
		if got.Type != TypeIWAD {
			t.Errorf("Type = %q, want %q", got.Type, TypeIWAD)
		}
		if captured == nil {
			t.Fatal("captured order = nil, want side-file contents")
		}
		lumps := got.Lumps()
		if len(lumps) != 2 || lumps[0].Name != "map01" || lumps[1].Name != "things" {
			t.Errorf("lumps = %v, want [map01 things]", lumpNames(lumps))
		}
	})

	t.Run("missing header region is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "0-map01"), []byte("abcd"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := ReadDirectory(dir, testLogger()); err == nil {
			t.Error("ReadDirectory() error = nil, want missing header error")
		}
	})

	t.Run("non-region files are skipped", func(t *testing.T) {
		t.Parallel()

		src := testutil.WriteContainer(t, t.TempDir(), "src.wad", TypePWAD, []testutil.Lump{
			{Name: "MAP01", Data: []byte("abcd")},
		})
		m, err := ReadContainer(src, testLogger())
		if err != nil {
			t.Fatal(err)
		}
		dir := filepath.Join(t.TempDir(), "out")
		if err := WriteDirectory(m, dir, WriteOptions{}, testLogger()); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644); err != nil {
			t.Fatal(err)
		}

		got, _, err := ReadDirectory(dir, testLogger())
		if err != nil {
			t.Fatalf("ReadDirectory() error = %v", err)
		}
		for _, r := range got.Regions() {
			if r.Name == "README" {
				t.Error("README was read as a region")
			}
		}
	})
}

func lumpNames(lumps []*Region) []string {
	var names []string
	for _, l := range lumps {
		names = append(names, l.Name)
	}
	return names
}
