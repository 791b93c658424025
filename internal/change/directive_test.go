// SPDX-License-Identifier: MPL-2.0

package change

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("bare token is a delete", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]string{"DEMO?"}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(s.directives) != 1 || s.directives[0].Action != Delete {
			t.Fatalf("directives = %+v, want one delete", s.directives)
		}
		if s.directives[0].Pattern != "DEMO?" {
			t.Errorf("Pattern = %q, want %q", s.directives[0].Pattern, "DEMO?")
		}
	})

	t.Run("empty value is the explicit delete form", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]string{"B="}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(s.directives) != 1 || s.directives[0].Action != Delete {
			t.Fatalf("directives = %+v, want one delete", s.directives)
		}
	})

	t.Run("literal value is a modify", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]string{"MAP01=hello"}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		d := s.directives[0]
		if d.Action != Modify || d.Value.Kind != Literal || string(d.Value.Bytes) != "hello" {
			t.Errorf("directive = %+v, want modify with literal %q", d, "hello")
		}
	})

	t.Run("colon value reads the file at parse time", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.bin")
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
		s, err := Parse([]string{"MAP01=:" + path}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		d := s.directives[0]
		if d.Value.Kind != FromFile || string(d.Value.Bytes) != "content" {
			t.Errorf("Value = %+v, want file content", d.Value)
		}
	})

	t.Run("unreadable colon value is fatal at parse time", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse([]string{"MAP01=:/does/not/exist"}, nil, Options{}); err == nil {
			t.Error("Parse() error = nil, want read error")
		}
	})

	t.Run("at-sign keeps existing content", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]string{"MAP01=@"}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if s.directives[0].Value.Kind != UseExisting {
			t.Errorf("Value.Kind = %v, want UseExisting", s.directives[0].Value.Kind)
		}
	})

	t.Run("plus prefix is an add", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]string{"+CREDITS=thanks"}, nil, Options{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(s.adds) != 1 || s.adds[0].Name != "CREDITS" || string(s.adds[0].Value.Bytes) != "thanks" {
			t.Errorf("adds = %+v, want one CREDITS add", s.adds)
		}
	})

	t.Run("add with at-sign is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse([]string{"+CREDITS=@"}, nil, Options{}); err == nil {
			t.Error("Parse() error = nil, want @ rejection")
		}
	})

	t.Run("add without a name is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse([]string{"+=x"}, nil, Options{}); err == nil {
			t.Error("Parse() error = nil, want missing name error")
		}
	})

	t.Run("malformed pattern is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse([]string{"MAP[1"}, nil, Options{}); err == nil {
			t.Error("Parse() error = nil, want malformed pattern error")
		}
	})
}

func TestDirectiveMatches(t *testing.T) {
	t.Parallel()

	d := &Directive{Pattern: "DEMO?"}
	if !d.matches("demo1") {
		t.Error("matches(demo1) = false, want true")
	}
	if !d.matches("DEMO2") {
		t.Error("matches(DEMO2) = false, want true")
	}
	if d.matches("DEMO") {
		t.Error("matches(DEMO) = true, want false")
	}
	if d.matches("DEMO12") {
		t.Error("matches(DEMO12) = true, want false")
	}
}
