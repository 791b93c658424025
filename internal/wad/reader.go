// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"

	"wadlump-cli/internal/issue"
)

// regionFilePattern matches region file names in a WAD directory: a
// zero-padded number, a dash, and the region name.
var regionFilePattern = regexp.MustCompile(`^(\d+)-(\S+)$`)

// Read loads a model from path, which may be a WAD container or a WAD
// directory previously produced by this tool. For directories the captured
// order side-file is returned too, when present.
func Read(path string, logger *log.Logger) (*Model, *CapturedOrder, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("read input").
			WithResource(path).
			WithSuggestion("Check that the path exists and is readable").
			Wrap(err).
			BuildError()
	}
	if fi.IsDir() {
		return ReadDirectory(path, logger)
	}
	m, err := ReadContainer(path, logger)
	return m, nil, err
}

// ReadContainer loads the region model from a binary WAD container:
// the header pseudo-region, one region per directory entry, the directory
// pseudo-region, and gap regions covering any unreferenced bytes.
func ReadContainer(path string, logger *log.Logger) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("open container").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	defer f.Close()

	hdrBytes := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hdrBytes); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read container header").
			WithResource(path).
			WithIssue(issue.UnknownWadTypeId).
			Wrap(err).
			BuildError()
	}
	hdr, err := ParseHeader(hdrBytes)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read container header").
			WithResource(path).
			WithIssue(issue.UnknownWadTypeId).
			Wrap(err).
			BuildError()
	}

	m := NewModel(hdr.Type)
	m.BackingPath = path
	m.mustInsert(&Region{Offset: 0, Sequence: 0, Size: HeaderSize, Name: HeaderName})
	m.mustInsert(&Region{
		Offset:   hdr.DirOffset,
		Sequence: MaxSequence,
		Size:     hdr.Count * DirEntrySize,
		Name:     DirectoryName,
	})

	if _, err := f.Seek(int64(hdr.DirOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to directory at %d: %w", hdr.DirOffset, err)
	}
	buf := make([]byte, DirEntrySize)
	var running uint32
	for i := uint32(0); i < hdr.Count; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			logger.Warn("short directory read, stopping early",
				"entries", i, "declared", hdr.Count, "error", err)
			break
		}
		ent, err := ParseDirEntry(buf)
		if err != nil {
			return nil, err
		}
		seq := int64(i) + 1
		if ent.Name == "" {
			if ent.Offset != 0 || ent.Size != 0 {
				logger.Warn("unnamed directory entry carries offset or size, ignoring",
					"entry", i, "offset", ent.Offset, "size", ent.Size)
			}
			continue
		}
		off := ent.Offset
		if off == 0 {
			// Zero-offset entries (typical for marker lumps) inherit the
			// running offset so they sort where they belong.
			off = running
		}
		r := &Region{Offset: off, Sequence: seq, Size: ent.Size, Name: ent.Name, IsLump: true}
		if err := m.Insert(r); err != nil {
			logger.Warn("ignoring duplicate directory entry", "name", ent.Name, "error", err)
			continue
		}
		running = off + ent.Size
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat container %q: %w", path, err)
	}
	m.fillGaps(uint32(fi.Size()))

	logger.Debug("container read", "path", path, "type", m.Type, "regions", m.Len())
	return m, nil
}

// fillGaps inserts gap regions covering every byte claimed by no declared
// region, including trailing slack past the last declared byte.
func (m *Model) fillGaps(totalSize uint32) {
	var gaps []*Region
	var current uint32
	for _, r := range m.regions {
		if r.Offset > current {
			gaps = append(gaps, &Region{Offset: current, Size: r.Offset - current, Name: GapName})
		}
		if end := r.Offset + r.Size; end > current {
			current = end
		}
	}
	if totalSize > current {
		gaps = append(gaps, &Region{Offset: current, Size: totalSize - current, Name: GapName})
	}
	for _, g := range gaps {
		m.mustInsert(g)
	}
}

// mustInsert is for regions whose keys are unique by construction.
func (m *Model) mustInsert(r *Region) {
	if err := m.Insert(r); err != nil {
		panic(err)
	}
}

// ReadDirectory loads the region model from a WAD directory: one region
// per file matching the region pattern, namespaces from subdirectory
// nesting, the container type from the header sentinel file, and the
// captured order side-file when present.
func ReadDirectory(dir string, logger *log.Logger) (*Model, *CapturedOrder, error) {
	m := NewModel("")
	digits := 0

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if path == filepath.Join(dir, OrderFileName) {
			return nil
		}
		match := regionFilePattern.FindStringSubmatch(name)
		if match == nil {
			logger.Warn("ignoring non-region file", "path", path)
			return nil
		}
		numStr, regionName := match[1], match[2]
		if digits == 0 {
			digits = len(numStr)
		} else if len(numStr) != digits {
			logger.Warn("ignoring region file with inconsistent number width",
				"path", path, "width", len(numStr), "want", digits)
			return nil
		}
		num, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			logger.Warn("ignoring region file with unparsable number", "path", path, "error", err)
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat region file %q: %w", path, err)
		}

		if regionName == HeaderName {
			if m.Type != "" {
				logger.Warn("ignoring duplicate header region", "path", path)
				return nil
			}
			wadType, err := readHeaderType(path)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("read header region").
					WithResource(path).
					WithIssue(issue.UnknownWadTypeId).
					Wrap(err).
					BuildError()
			}
			m.Type = wadType
		}

		seq := num
		if regionName == DirectoryName {
			seq = MaxSequence
		}
		r := &Region{
			Sequence:  seq,
			Size:      uint32(fi.Size()),
			Namespace: relativeNamespace(dir, path),
			Name:      regionName,
			Source:    FileSource(path),
			IsLump:    IsLumpName(regionName),
		}
		if err := m.Insert(r); err != nil {
			logger.Warn("ignoring region file with duplicate number", "path", path, "error", err)
		}
		return nil
	})
	if walkErr != nil {
		var ae *issue.ActionableError
		if errors.As(walkErr, &ae) {
			return nil, nil, walkErr
		}
		return nil, nil, issue.NewErrorContext().
			WithOperation("read WAD directory").
			WithResource(dir).
			WithSuggestion("Check that the directory exists and has read permission").
			Wrap(walkErr).
			BuildError()
	}

	if m.Type == "" {
		return nil, nil, issue.NewErrorContext().
			WithOperation("read WAD directory").
			WithResource(dir).
			WithIssue(issue.MissingHeaderId).
			Wrap(fmt.Errorf("no header region file found")).
			BuildError()
	}

	captured, err := ReadOrderFile(dir)
	if err != nil {
		logger.Warn("ignoring malformed order side-file", "dir", dir, "error", err)
		captured = nil
	}

	logger.Debug("directory read", "dir", dir, "type", m.Type, "regions", m.Len())
	return m, captured, nil
}

// readHeaderType reads and validates the container type tag from a header
// region file.
func readHeaderType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	tag := make([]byte, 4)
	if _, err := io.ReadFull(f, tag); err != nil {
		return "", fmt.Errorf("read type tag: %w", err)
	}
	if !ValidType(string(tag)) {
		return "", fmt.Errorf("unrecognized container type %q (want %s or %s)", string(tag), TypeIWAD, TypePWAD)
	}
	return string(tag), nil
}

// relativeNamespace derives the namespace path from a region file's
// position under the directory root.
func relativeNamespace(root, path string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
