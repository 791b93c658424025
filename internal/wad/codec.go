// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// TypeIWAD marks a standalone ("internal") WAD container.
	TypeIWAD = "IWAD"
	// TypePWAD marks a patch WAD container.
	TypePWAD = "PWAD"

	// HeaderSize is the fixed size of the container header in bytes:
	// 4-byte ASCII type tag, u32 entry count, u32 directory offset.
	HeaderSize = 12

	// DirEntrySize is the fixed size of one directory entry in bytes:
	// u32 payload offset, u32 payload size, 8-byte zero-padded name.
	DirEntrySize = 16

	// NameSize is the fixed width of a directory entry name.
	NameSize = 8
)

// Header is the decoded container header. All integers are little-endian
// on the wire.
type Header struct {
	Type      string
	Count     uint32
	DirOffset uint32
}

// DirEntry is one decoded directory entry.
type DirEntry struct {
	Offset uint32
	Size   uint32
	Name   string
}

// ValidType reports whether tag is a recognized container type.
func ValidType(tag string) bool {
	return tag == TypeIWAD || tag == TypePWAD
}

// ParseHeader decodes a container header. The type tag is validated; an
// unrecognized tag is a fatal condition for callers.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("header truncated: %d bytes, want %d", len(b), HeaderSize)
	}
	h := Header{
		Type:      string(b[0:4]),
		Count:     binary.LittleEndian.Uint32(b[4:8]),
		DirOffset: binary.LittleEndian.Uint32(b[8:12]),
	}
	if !ValidType(h.Type) {
		return Header{}, fmt.Errorf("unrecognized container type %q (want %s or %s)", h.Type, TypeIWAD, TypePWAD)
	}
	return h, nil
}

// Encode serializes the header to its 12-byte wire form.
func (h Header) Encode() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], h.Type)
	binary.LittleEndian.PutUint32(b[4:8], h.Count)
	binary.LittleEndian.PutUint32(b[8:12], h.DirOffset)
	return b
}

// ParseDirEntry decodes one 16-byte directory entry. The name is truncated
// at the first NUL byte.
func ParseDirEntry(b []byte) (DirEntry, error) {
	if len(b) < DirEntrySize {
		return DirEntry{}, fmt.Errorf("directory entry truncated: %d bytes, want %d", len(b), DirEntrySize)
	}
	name := b[8:16]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return DirEntry{
		Offset: binary.LittleEndian.Uint32(b[0:4]),
		Size:   binary.LittleEndian.Uint32(b[4:8]),
		Name:   string(name),
	}, nil
}

// Encode serializes the entry to its 16-byte wire form. Names longer than
// NameSize are truncated; shorter names are zero-padded.
func (e DirEntry) Encode() []byte {
	b := make([]byte, DirEntrySize)
	binary.LittleEndian.PutUint32(b[0:4], e.Offset)
	binary.LittleEndian.PutUint32(b[4:8], e.Size)
	name := e.Name
	if len(name) > NameSize {
		name = name[:NameSize]
	}
	copy(b[8:16], name)
	return b
}

// WireName folds a lump name to its conventional container case (upper)
// unless case preservation was requested.
func WireName(name string, preserveCase bool) string {
	if preserveCase {
		return name
	}
	return strings.ToUpper(name)
}

// FileName folds a lump name to its conventional region-file case (lower)
// unless case preservation was requested.
func FileName(name string, preserveCase bool) string {
	if preserveCase {
		return name
	}
	return strings.ToLower(name)
}
