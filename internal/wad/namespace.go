// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

const (
	startMarkerSuffix = "_START"
	endMarkerSuffix   = "_END"
)

// NamespaceMap records the namespace in effect at each marker offset,
// answering nearest-offset-not-greater-than queries for regions (gaps)
// that carry no name of their own.
type NamespaceMap struct {
	offsets []uint32
	paths   []string
}

func (nm *NamespaceMap) record(offset uint32, path string) {
	// Offsets arrive in ascending model order; a repeated offset just
	// updates the latest transition.
	if n := len(nm.offsets); n > 0 && nm.offsets[n-1] == offset {
		nm.paths[n-1] = path
		return
	}
	nm.offsets = append(nm.offsets, offset)
	nm.paths = append(nm.paths, path)
}

// At returns the namespace recorded at the greatest offset not greater
// than the given offset, or "" when nothing precedes it.
func (nm *NamespaceMap) At(offset uint32) string {
	i, found := slices.BinarySearch(nm.offsets, offset)
	if !found {
		i--
	}
	if i < 0 {
		return ""
	}
	return nm.paths[i]
}

// StartMarkerPrefix returns the namespace element opened by name, and
// whether name is a start marker at all. Matching is case-insensitive.
func StartMarkerPrefix(name string) (string, bool) {
	if n := len(name) - len(startMarkerSuffix); n >= 0 && strings.EqualFold(name[n:], startMarkerSuffix) {
		return name[:n], true
	}
	return "", false
}

// EndMarkerPrefix returns the namespace element closed by name, and
// whether name is an end marker at all. Matching is case-insensitive.
func EndMarkerPrefix(name string) (string, bool) {
	if n := len(name) - len(endMarkerSuffix); n >= 0 && strings.EqualFold(name[n:], endMarkerSuffix) {
		return name[:n], true
	}
	return "", false
}

// ResolveNamespaces derives a namespace path for every lump from the
// ordered stream of start/end marker lumps, then resolves gap regions
// against the recorded offsets. An end marker that does not close the
// innermost open namespace is a recoverable condition: it is logged and
// the stack is left unchanged. Unterminated namespaces at the end of the
// stream are not an error.
func ResolveNamespaces(m *Model, logger *log.Logger) *NamespaceMap {
	nm := &NamespaceMap{}
	var current []string

	for _, r := range m.Regions() {
		if !r.IsLump {
			continue
		}
		if prefix, ok := StartMarkerPrefix(r.Name); ok {
			current = append(current, prefix)
			r.Namespace = strings.Join(current, "/")
			nm.record(r.Offset, r.Namespace)
			continue
		}
		if prefix, ok := EndMarkerPrefix(r.Name); ok {
			if n := len(current); n > 0 && strings.EqualFold(current[n-1], prefix) {
				current = current[:n-1]
			} else {
				logger.Warn("unmatched namespace end marker",
					"marker", r.Name, "offset", r.Offset, "open", strings.Join(current, "/"))
			}
			r.Namespace = strings.Join(current, "/")
			nm.record(r.Offset, r.Namespace)
			continue
		}
		r.Namespace = strings.Join(current, "/")
	}

	// Offset lookups only make sense for container-backed models. In a
	// directory read every region sits at offset zero and the gaps already
	// carry their nesting-derived namespace.
	if m.BackingPath != "" {
		for _, r := range m.Regions() {
			if r.Name == GapName {
				r.Namespace = nm.At(r.Offset)
			}
		}
	}
	return nm
}
