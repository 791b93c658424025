// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Lump is one named payload for a test container.
type Lump struct {
	Name string
	Data []byte
}

// BuildContainer assembles an in-memory WAD container: header, then the
// payloads back to back, then the directory.
func BuildContainer(wadType string, lumps []Lump) []byte {
	var payload []byte
	var dir []byte
	offset := uint32(12)
	for _, l := range lumps {
		entry := make([]byte, 16)
		binary.LittleEndian.PutUint32(entry[0:4], offset)
		binary.LittleEndian.PutUint32(entry[4:8], uint32(len(l.Data)))
		copy(entry[8:16], strings.ToUpper(l.Name))
		dir = append(dir, entry...)
		payload = append(payload, l.Data...)
		offset += uint32(len(l.Data))
	}

	header := make([]byte, 12)
	copy(header[0:4], wadType)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(lumps)))
	binary.LittleEndian.PutUint32(header[8:12], offset)

	out := append(header, payload...)
	return append(out, dir...)
}

// WriteContainer writes a test container into dir and returns its path.
func WriteContainer(t *testing.T, dir, name, wadType string, lumps []Lump) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildContainer(wadType, lumps), 0o644); err != nil {
		t.Fatalf("write test container: %v", err)
	}
	return path
}
