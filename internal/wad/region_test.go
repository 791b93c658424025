// SPDX-License-Identifier: MPL-2.0

package wad

import "testing"

func TestModelInsert(t *testing.T) {
	t.Parallel()

	t.Run("keeps regions sorted by offset then sequence", func(t *testing.T) {
		t.Parallel()

		m := NewModel(TypePWAD)
		for _, r := range []*Region{
			{Offset: 100, Sequence: 2, Name: "B", IsLump: true},
			{Offset: 0, Sequence: 0, Name: HeaderName},
			{Offset: 100, Sequence: 1, Name: "A", IsLump: true},
			{Offset: 50, Sequence: 3, Name: "C", IsLump: true},
		} {
			if err := m.Insert(r); err != nil {
				t.Fatalf("Insert(%s) error = %v", r.Name, err)
			}
		}

		want := []string{HeaderName, "C", "A", "B"}
		for i, r := range m.Regions() {
			if r.Name != want[i] {
				t.Errorf("Regions()[%d].Name = %q, want %q", i, r.Name, want[i])
			}
		}
	})

	t.Run("rejects a duplicate key", func(t *testing.T) {
		t.Parallel()

		m := NewModel(TypePWAD)
		if err := m.Insert(&Region{Offset: 12, Sequence: 1, Name: "A"}); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if err := m.Insert(&Region{Offset: 12, Sequence: 1, Name: "B"}); err == nil {
			t.Error("Insert() error = nil, want duplicate key error")
		}
	})
}

func TestModelRemove(t *testing.T) {
	t.Parallel()

	m := NewModel(TypePWAD)
	r := &Region{Offset: 12, Sequence: 1, Name: "A", IsLump: true}
	if err := m.Insert(r); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// A distinct region with the same key is not the same identity.
	ghost := &Region{Offset: 12, Sequence: 1, Name: "A"}
	if m.Remove(ghost) {
		t.Error("Remove(ghost) = true, want false")
	}
	if !m.Remove(r) {
		t.Error("Remove(r) = false, want true")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestIsLumpName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{HeaderName, DirectoryName, GapName} {
		if IsLumpName(name) {
			t.Errorf("IsLumpName(%q) = true, want false", name)
		}
	}
	if !IsLumpName("MAP01") {
		t.Error("IsLumpName(MAP01) = false, want true")
	}
}

func TestAppendKey(t *testing.T) {
	t.Parallel()

	t.Run("container mode sorts past the last lump", func(t *testing.T) {
		t.Parallel()

		m := NewModel(TypePWAD)
		m.mustInsert(&Region{Offset: 0, Sequence: 0, Size: 12, Name: HeaderName})
		m.mustInsert(&Region{Offset: 12, Sequence: 1, Size: 8, Name: "A", IsLump: true})
		m.mustInsert(&Region{Offset: 20, Sequence: 2, Size: 4, Name: "B", IsLump: true})
		m.mustInsert(&Region{Offset: 24, Sequence: MaxSequence, Size: 32, Name: DirectoryName})

		offset, sequence := m.AppendKey()
		if offset != 20 || sequence != 3 {
			t.Errorf("AppendKey() = (%d, %d), want (20, 3)", offset, sequence)
		}
	})

	t.Run("directory mode is sequence driven", func(t *testing.T) {
		t.Parallel()

		m := NewModel(TypePWAD)
		m.mustInsert(&Region{Sequence: 0, Name: HeaderName})
		m.mustInsert(&Region{Sequence: 1, Name: "A", IsLump: true})
		m.mustInsert(&Region{Sequence: 7, Name: "B", IsLump: true})

		offset, sequence := m.AppendKey()
		if offset != 0 || sequence != 8 {
			t.Errorf("AppendKey() = (%d, %d), want (0, 8)", offset, sequence)
		}
	})
}
