// SPDX-License-Identifier: MPL-2.0

package change

import (
	"fmt"
	"os"
	"path"
	"strings"

	"wadlump-cli/internal/issue"
)

// ValueKind discriminates the forms a directive value can take.
type ValueKind int

const (
	// Literal uses the directive's bytes as the new payload.
	Literal ValueKind = iota
	// FromFile reads the new payload from an external file (":path").
	FromFile
	// UseExisting ("@") keeps the current payload while still consuming
	// once-semantics and counting toward the modify tally.
	UseExisting
)

// Value is a directive's parsed value. FromFile payloads are read at parse
// time so an unreadable file aborts before any output is produced.
type Value struct {
	Kind  ValueKind
	Path  string
	Bytes []byte
}

// Action discriminates what a directive does to matching lumps.
type Action int

const (
	// Delete removes matching lumps (keeps them under inversion).
	Delete Action = iota
	// Modify replaces the payload of matching lumps.
	Modify
)

// Directive is one parsed change token. Directives form an ordered list
// scanned linearly per candidate lump: first match wins, and a consumed
// directive never matches again.
type Directive struct {
	Pattern  string
	Action   Action
	Value    Value
	consumed bool
}

// addDirective is an unconditional add, applied after the matching pass.
type addDirective struct {
	Name  string
	Value Value
}

// Options configure parsing and application of a change set.
type Options struct {
	// Once retires each modify pattern after its first match.
	Once bool
	// Invert turns the bare-pattern set into a keep-list: lumps matching
	// no bare pattern are deleted.
	Invert bool
}

// Set is a parsed, ordered collection of change directives.
type Set struct {
	directives []*Directive
	adds       []addDirective
	opts       Options
}

// Empty reports whether the set contains no directives at all.
func (s *Set) Empty() bool {
	return len(s.directives) == 0 && len(s.adds) == 0
}

// Parse expands group tokens and parses each resulting token into a
// directive. Patterns are case-insensitive globs; malformed patterns and
// unreadable ":path" values are fatal here, before any output exists.
func Parse(tokens []string, groups map[string][]string, opts Options) (*Set, error) {
	expanded, err := ExpandGroups(tokens, groups)
	if err != nil {
		return nil, err
	}

	s := &Set{opts: opts}
	for _, tok := range expanded {
		if name, rest, ok := strings.Cut(tok, "="); ok {
			value, err := parseValue(rest)
			if err != nil {
				return nil, err
			}
			name = strings.TrimSpace(name)
			if strings.HasPrefix(name, "+") {
				name = strings.TrimSpace(strings.TrimPrefix(name, "+"))
				if name == "" {
					return nil, fmt.Errorf("add directive %q has no name", tok)
				}
				if value.Kind == UseExisting {
					return nil, fmt.Errorf("add directive %q cannot use @ (there is no existing content)", tok)
				}
				s.adds = append(s.adds, addDirective{Name: name, Value: value})
				continue
			}
			if err := checkPattern(name); err != nil {
				return nil, err
			}
			// "pattern=" with an empty value is the explicit delete form.
			if value.Kind == Literal && len(value.Bytes) == 0 {
				s.directives = append(s.directives, &Directive{Pattern: name, Action: Delete})
				continue
			}
			s.directives = append(s.directives, &Directive{Pattern: name, Action: Modify, Value: value})
			continue
		}
		pattern := strings.TrimSpace(tok)
		if err := checkPattern(pattern); err != nil {
			return nil, err
		}
		s.directives = append(s.directives, &Directive{Pattern: pattern, Action: Delete})
	}
	return s, nil
}

// parseValue decodes the right-hand side of an add or modify directive.
func parseValue(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, ":"):
		file := raw[1:]
		b, err := os.ReadFile(file)
		if err != nil {
			return Value{}, issue.NewErrorContext().
				WithOperation("read change payload").
				WithResource(file).
				WithSuggestion("Check that the path after ':' exists and is readable").
				Wrap(err).
				BuildError()
		}
		return Value{Kind: FromFile, Path: file, Bytes: b}, nil
	case raw == "@":
		return Value{Kind: UseExisting}, nil
	default:
		return Value{Kind: Literal, Bytes: []byte(raw)}, nil
	}
}

// checkPattern rejects malformed glob patterns at parse time.
func checkPattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty change pattern")
	}
	if _, err := path.Match(strings.ToLower(pattern), ""); err != nil {
		return fmt.Errorf("malformed change pattern %q: %w", pattern, err)
	}
	return nil
}

// matches reports whether the directive's pattern matches name,
// case-insensitively.
func (d *Directive) matches(name string) bool {
	ok, err := path.Match(strings.ToLower(d.Pattern), strings.ToLower(name))
	return err == nil && ok
}
