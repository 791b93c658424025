// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

// OrderFileName is the captured-order side-file written into every WAD
// directory. It records the lump order of the container the directory was
// exploded from, so a rebuild can restore it even after region files were
// renamed or renumbered.
const OrderFileName = "wadlump.order.toml"

// CapturedOrder is the decoded side-file.
type CapturedOrder struct {
	Type  string   `toml:"wad_type"`
	Lumps []string `toml:"lumps"`
}

// CaptureOrder records the model's current lump order.
func CaptureOrder(m *Model) *CapturedOrder {
	co := &CapturedOrder{Type: m.Type}
	for _, l := range m.Lumps() {
		co.Lumps = append(co.Lumps, l.Name)
	}
	return co
}

// WriteOrderFile writes the captured-order side-file into dir.
func WriteOrderFile(dir string, m *Model) error {
	b, err := toml.Marshal(CaptureOrder(m))
	if err != nil {
		return fmt.Errorf("encode order side-file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, OrderFileName), b, 0o644); err != nil {
		return fmt.Errorf("write order side-file: %w", err)
	}
	return nil
}

// ReadOrderFile reads the captured-order side-file from dir. A missing
// file is not an error; it returns (nil, nil).
func ReadOrderFile(dir string) (*CapturedOrder, error) {
	b, err := os.ReadFile(filepath.Join(dir, OrderFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read order side-file: %w", err)
	}
	var co CapturedOrder
	if err := toml.Unmarshal(b, &co); err != nil {
		return nil, fmt.Errorf("decode order side-file: %w", err)
	}
	return &co, nil
}

// orderKey sorts a lump into its captured position. Lumps absent from the
// captured order keep their current position relative to the lump assigned
// just before them: they share its primary key and break the tie with an
// insertion counter.
type orderKey struct {
	region  *Region
	primary int
	tie     int
}

// ReconcileOrder reassigns lump sequence numbers so that ascending
// sequence equals the captured order. Repeated lump names consume captured
// indices first-in-first-out. Lumps missing from the captured order are
// logged and keep their current relative position (determinism over
// correctness). Sequence is part of the model's sort key, so every
// remapped region is removed and re-inserted, never mutated in place.
func ReconcileOrder(m *Model, captured *CapturedOrder, logger *log.Logger) {
	lumps := m.Lumps()
	if len(lumps) == 0 {
		return
	}

	queues := make(map[string][]int, len(captured.Lumps))
	for i, name := range captured.Lumps {
		key := strings.ToLower(name)
		queues[key] = append(queues[key], i)
	}

	keys := make([]orderKey, 0, len(lumps))
	lastPrimary := -1
	tie := 0
	for _, l := range lumps {
		name := strings.ToLower(l.Name)
		if q := queues[name]; len(q) > 0 {
			idx := q[0]
			queues[name] = q[1:]
			keys = append(keys, orderKey{region: l, primary: idx})
			lastPrimary = idx
			tie = 0
		} else {
			logger.Warn("lump missing from captured order, keeping relative position",
				"name", l.Name, "sequence", l.Sequence)
			tie++
			keys = append(keys, orderKey{region: l, primary: lastPrimary, tie: tie})
		}
	}

	slices.SortStableFunc(keys, func(a, b orderKey) int {
		if a.primary != b.primary {
			return a.primary - b.primary
		}
		return a.tie - b.tie
	})

	// The structural positions are the lumps' existing (already ascending)
	// sequence slots; handing them out in captured order leaves the
	// header/directory/gap regions exactly where they were.
	seqs := make([]int64, len(lumps))
	for i, l := range lumps {
		seqs[i] = l.Sequence
	}
	for _, k := range keys {
		m.Remove(k.region)
	}
	for i, k := range keys {
		k.region.Sequence = seqs[i]
		m.mustInsert(k.region)
	}
}
