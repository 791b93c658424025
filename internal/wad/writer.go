// SPDX-License-Identifier: MPL-2.0

package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"wadlump-cli/internal/issue"
)

// WriteOptions control both serializer sinks.
type WriteOptions struct {
	// PreserveCase keeps lump names as stored instead of folding them to
	// the conventional case (upper on the wire, lower on disk).
	PreserveCase bool
	// LumpsOnly limits directory output to actual lumps, dropping the
	// header/directory/gap pseudo-regions.
	LumpsOnly bool
	// Namespaces buckets directory output into namespace subdirectories.
	Namespaces bool
	// Force overwrites existing output locations.
	Force bool
}

// payloadReader streams region payloads. SourceNone regions read from the
// backing container, which is opened once on first use.
type payloadReader struct {
	backingPath string
	backing     *os.File
}

func (pr *payloadReader) copy(w io.Writer, r *Region) (int64, error) {
	switch r.Source.Kind {
	case SourceBytes:
		n, err := w.Write(r.Source.Bytes)
		return int64(n), err
	case SourceFile:
		f, err := os.Open(r.Source.Path)
		if err != nil {
			return 0, fmt.Errorf("open region file %q: %w", r.Source.Path, err)
		}
		defer f.Close()
		return io.Copy(w, f)
	default:
		if pr.backing == nil {
			if pr.backingPath == "" {
				return 0, fmt.Errorf("region %q has no payload source and no backing container", r.Name)
			}
			f, err := os.Open(pr.backingPath)
			if err != nil {
				return 0, fmt.Errorf("open backing container %q: %w", pr.backingPath, err)
			}
			pr.backing = f
		}
		return io.Copy(w, io.NewSectionReader(pr.backing, int64(r.Offset), int64(r.Size)))
	}
}

func (pr *payloadReader) close() {
	if pr.backing != nil {
		pr.backing.Close()
		pr.backing = nil
	}
}

// WriteContainer serializes the model to a new binary container at path.
func WriteContainer(m *Model, path string, opts WriteOptions, logger *log.Logger) error {
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return issue.NewErrorContext().
			WithOperation("create output container").
			WithResource(path).
			WithIssue(issue.OutputExistsId).
			Wrap(fmt.Errorf("output exists and --force was not given")).
			BuildError()
	}
	f, err := os.Create(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create output container").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	if err := writeContainerTo(m, f, opts, logger); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeContainerTo writes the container body: a provisional header, each
// lump payload in model order, the rebuilt directory, then the header
// patched with the final count and directory offset.
func writeContainerTo(m *Model, f *os.File, opts WriteOptions, logger *log.Logger) error {
	pr := &payloadReader{backingPath: m.BackingPath}
	defer pr.close()

	if _, err := f.Write(Header{Type: m.Type}.Encode()); err != nil {
		return fmt.Errorf("write provisional header: %w", err)
	}

	var entries []DirEntry
	running := uint32(HeaderSize)
	for _, r := range m.Regions() {
		if !r.IsLump {
			continue
		}
		n, err := pr.copy(f, r)
		if err != nil {
			return fmt.Errorf("write payload for %q: %w", r.Name, err)
		}
		if uint32(n) != r.Size {
			logger.Warn("payload size changed since read", "name", r.Name, "expected", r.Size, "wrote", n)
		}
		entries = append(entries, DirEntry{
			Offset: running,
			Size:   uint32(n),
			Name:   WireName(r.Name, opts.PreserveCase),
		})
		running += uint32(n)
	}

	for _, e := range entries {
		if _, err := f.Write(e.Encode()); err != nil {
			return fmt.Errorf("write directory entry for %q: %w", e.Name, err)
		}
	}

	// Patch the header now that the count and directory offset are known.
	patch := make([]byte, 8)
	binary.LittleEndian.PutUint32(patch[0:4], uint32(len(entries)))
	binary.LittleEndian.PutUint32(patch[4:8], running)
	if _, err := f.WriteAt(patch, 4); err != nil {
		return fmt.Errorf("patch header: %w", err)
	}

	logger.Debug("container written", "lumps", len(entries), "dir_offset", running)
	return nil
}

// RewriteInPlace serializes the model back over its backing container.
// The new container is written to a temporary file in the same directory
// and renamed over the original only after the full write succeeds, so an
// aborted run never leaves a partial container behind.
func RewriteInPlace(m *Model, opts WriteOptions, logger *log.Logger) error {
	if m.BackingPath == "" {
		return fmt.Errorf("in-place rewrite requires a container input")
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.BackingPath), ".wadlump-*.tmp")
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create temporary container").
			WithResource(m.BackingPath).
			Wrap(err).
			BuildError()
	}
	tmpPath := tmp.Name()
	if err := writeContainerTo(m, tmp, opts, logger); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temporary container: %w", err)
	}
	if err := os.Rename(tmpPath, m.BackingPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace container %q: %w", m.BackingPath, err)
	}
	logger.Debug("container rewritten in place", "path", m.BackingPath)
	return nil
}

// WriteDirectory serializes the model to a WAD directory: one file per
// region named by a zero-padded write index and the region name, plus the
// captured-order side-file.
func WriteDirectory(m *Model, dir string, opts WriteOptions, logger *log.Logger) error {
	if err := prepareOutputDir(dir, opts.Force); err != nil {
		return err
	}

	pr := &payloadReader{backingPath: m.BackingPath}
	defer pr.close()

	// Zero-based index width over every region, matching the numbering a
	// later directory read expects to be consistent.
	digits := len(fmt.Sprint(m.Len() - 1))
	index := 0
	for _, r := range m.Regions() {
		if opts.LumpsOnly && !r.IsLump {
			continue
		}
		target := dir
		if opts.Namespaces && r.Namespace != "" {
			target = filepath.Join(dir, filepath.FromSlash(FileName(r.Namespace, opts.PreserveCase)))
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create namespace directory %q: %w", target, err)
			}
		}
		name := fmt.Sprintf("%0*d-%s", digits, index, FileName(r.Name, opts.PreserveCase))
		path := filepath.Join(target, name)
		// Buffer the payload before creating the output file. When the
		// output directory is the source directory the region file and its
		// destination are the same path, and creating first would truncate
		// the payload before it is read.
		var buf bytes.Buffer
		if _, err := pr.copy(&buf, r); err != nil {
			return fmt.Errorf("read payload for %q: %w", r.Name, err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write region file %q: %w", path, err)
		}
		index++
	}

	if err := WriteOrderFile(dir, m); err != nil {
		return err
	}
	logger.Debug("directory written", "dir", dir, "files", index)
	return nil
}

// prepareOutputDir creates dir, or validates that reusing it was asked for
// explicitly.
func prepareOutputDir(dir string, force bool) error {
	fi, err := os.Stat(dir)
	switch {
	case err == nil:
		ctx := issue.NewErrorContext().
			WithOperation("create output directory").
			WithResource(dir)
		if !force {
			return ctx.
				WithIssue(issue.OutputExistsId).
				Wrap(fmt.Errorf("output exists and --force was not given")).
				BuildError()
		}
		if !fi.IsDir() {
			return ctx.
				Wrap(fmt.Errorf("output exists but is not a directory")).
				BuildError()
		}
		return nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return issue.NewErrorContext().
				WithOperation("create output directory").
				WithResource(dir).
				Wrap(err).
				BuildError()
		}
		return nil
	default:
		return fmt.Errorf("stat output directory %q: %w", dir, err)
	}
}
