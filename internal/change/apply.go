// SPDX-License-Identifier: MPL-2.0

package change

import (
	"fmt"

	"github.com/charmbracelet/log"

	"wadlump-cli/internal/wad"
)

// Stats tallies what one Apply pass did.
type Stats struct {
	Added    int
	Modified int
	Deleted  int
}

// String renders the tally for status output.
func (s Stats) String() string {
	return fmt.Sprintf("%d added, %d modified, %d deleted", s.Added, s.Modified, s.Deleted)
}

// Apply runs the change set over the model in one forward pass. Header,
// directory, and gap pseudo-regions are never matched, added, or removed.
// Deletes and modifies apply during the pass; adds append afterward, past
// the current maximum lump sequence and offset. When an added name
// collides with an existing one under once-semantics, the later directive
// wins: adds never consult the matching pass.
func (s *Set) Apply(m *wad.Model, logger *log.Logger) Stats {
	var stats Stats

	for _, r := range m.Regions() {
		if !r.IsLump {
			continue
		}
		if s.opts.Invert && !s.keptByInversion(r.Name) {
			m.Remove(r)
			stats.Deleted++
			logger.Debug("deleted by inversion", "name", r.Name)
			continue
		}
		for _, d := range s.directives {
			if d.consumed || !d.matches(r.Name) {
				continue
			}
			switch d.Action {
			case Delete:
				if s.opts.Invert {
					// Under inversion the bare patterns already did their
					// job as the keep-list.
					continue
				}
				m.Remove(r)
				stats.Deleted++
				logger.Debug("deleted", "name", r.Name, "pattern", d.Pattern)
			case Modify:
				if d.Value.Kind != UseExisting {
					r.Size = uint32(len(d.Value.Bytes))
					r.Source = wad.BytesSource(d.Value.Bytes)
				}
				stats.Modified++
				logger.Debug("modified", "name", r.Name, "pattern", d.Pattern, "size", r.Size)
				if s.opts.Once {
					d.consumed = true
				}
			}
			break
		}
	}

	if len(s.adds) > 0 {
		offset, sequence := m.AppendKey()
		for _, a := range s.adds {
			r := &wad.Region{
				Offset:   offset,
				Sequence: sequence,
				Size:     uint32(len(a.Value.Bytes)),
				Name:     a.Name,
				Source:   wad.BytesSource(a.Value.Bytes),
				IsLump:   true,
			}
			if err := m.Insert(r); err != nil {
				// Keys are handed out monotonically, so this cannot happen.
				logger.Warn("could not append region", "name", a.Name, "error", err)
				continue
			}
			sequence++
			stats.Added++
			logger.Debug("added", "name", a.Name, "size", r.Size)
		}
	}

	return stats
}

// keptByInversion reports whether any bare pattern claims the name.
func (s *Set) keptByInversion(name string) bool {
	for _, d := range s.directives {
		if d.Action == Delete && d.matches(name) {
			return true
		}
	}
	return false
}
