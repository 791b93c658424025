// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

const (
	// HeaderName is the pseudo-region carrying the raw container header.
	HeaderName = "header"
	// DirectoryName is the pseudo-region standing in for the directory.
	DirectoryName = "dir"
	// GapName is the pseudo-region covering bytes claimed by no directory
	// entry.
	GapName = "notindir"

	// MaxSequence is reserved for the synthetic directory region so it
	// always sorts last among regions sharing its offset.
	MaxSequence int64 = math.MaxInt64
)

// SourceKind discriminates where a region's payload currently lives.
type SourceKind int

const (
	// SourceNone means the payload is still in the backing container and
	// must be streamed from it by offset and size.
	SourceNone SourceKind = iota
	// SourceFile means the payload lives in an exploded region file.
	SourceFile
	// SourceBytes means the payload was materialized in memory, typically
	// by a change directive.
	SourceBytes
)

// Source locates a region's payload. The zero value is SourceNone.
type Source struct {
	Kind  SourceKind
	Path  string
	Bytes []byte
}

// FileSource returns a Source backed by an exploded region file.
func FileSource(path string) Source {
	return Source{Kind: SourceFile, Path: path}
}

// BytesSource returns a Source backed by in-memory content.
func BytesSource(b []byte) Source {
	return Source{Kind: SourceBytes, Bytes: b}
}

// Region is one logical byte range inside or describing the container.
// Regions are totally ordered by (Offset, Sequence) and owned by a Model.
type Region struct {
	Offset    uint32
	Sequence  int64
	Size      uint32
	Namespace string
	Name      string
	Source    Source
	IsLump    bool
}

// IsLumpName reports whether a region name denotes an actual lump rather
// than one of the header/directory/gap pseudo-regions.
func IsLumpName(name string) bool {
	switch name {
	case HeaderName, DirectoryName, GapName:
		return false
	}
	return true
}

// Model is the owned, mutable, ordered collection of regions for one
// conversion run. It is not safe for concurrent use: regions are created on
// read, mutated in place only by the change engine, re-keyed only through
// Remove followed by Insert, and consumed read-only by the serializer.
type Model struct {
	// Type is the validated container type tag.
	Type string
	// BackingPath is the container file that SourceNone payloads stream
	// from. Empty when the model was read from a directory.
	BackingPath string

	regions []*Region
}

// NewModel returns an empty model for a container of the given type.
func NewModel(wadType string) *Model {
	return &Model{Type: wadType}
}

func compareRegions(a, b *Region) int {
	if a.Offset != b.Offset {
		if a.Offset < b.Offset {
			return -1
		}
		return 1
	}
	if a.Sequence != b.Sequence {
		if a.Sequence < b.Sequence {
			return -1
		}
		return 1
	}
	return 0
}

// Insert adds a region, keeping the model sorted by (Offset, Sequence).
// A region whose key duplicates an existing one is rejected.
func (m *Model) Insert(r *Region) error {
	i, found := slices.BinarySearchFunc(m.regions, r, compareRegions)
	if found {
		return fmt.Errorf("duplicate region key (offset=%d, sequence=%d) for %q", r.Offset, r.Sequence, r.Name)
	}
	m.regions = slices.Insert(m.regions, i, r)
	return nil
}

// Remove deletes a region by identity and reports whether it was present.
func (m *Model) Remove(r *Region) bool {
	i, found := slices.BinarySearchFunc(m.regions, r, compareRegions)
	if !found || m.regions[i] != r {
		// Key collision can't happen (Insert rejects duplicates), so a
		// found entry that isn't r means r was never inserted.
		return false
	}
	m.regions = slices.Delete(m.regions, i, i+1)
	return true
}

// Len returns the number of regions.
func (m *Model) Len() int {
	return len(m.regions)
}

// Regions returns the regions in (Offset, Sequence) order. The slice is a
// copy, so callers may Remove or Insert while iterating it; the Region
// pointers are shared.
func (m *Model) Regions() []*Region {
	return slices.Clone(m.regions)
}

// Lumps returns only the lump regions, in model order.
func (m *Model) Lumps() []*Region {
	var lumps []*Region
	for _, r := range m.regions {
		if r.IsLump {
			lumps = append(lumps, r)
		}
	}
	return lumps
}

// AppendKey returns an (offset, sequence) key sorting after every current
// lump, where added regions belong. Because the key is offset-major, the
// maximum lump offset paired with one past the maximum lump sequence is
// past the last lump in both container mode (distinct offsets) and
// directory mode (all offsets zero, sequence-driven order).
func (m *Model) AppendKey() (offset uint32, sequence int64) {
	for _, r := range m.regions {
		if !r.IsLump {
			continue
		}
		if r.Offset > offset {
			offset = r.Offset
		}
		if r.Sequence > sequence {
			sequence = r.Sequence
		}
	}
	return offset, sequence + 1
}
