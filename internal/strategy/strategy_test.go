package strategy

import (
	"testing"

	"github.com/modfuse/modfuse/internal/bindings"
)

func TestModuleIDSanitization(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index", "index"},
		{"my-lib", "my_lib"},
		{"some.file", "some_file"},
		{"3d", "_3d"},
		{"$special", "$special"},
		{"", "module"},
	}

	for _, tt := range tests {
		f := NewFlat("$$")
		id := f.ModuleID(&bindings.Module{Name: tt.name})
		if id != tt.want {
			t.Errorf("ModuleID(%q) = %q, want %q", tt.name, id, tt.want)
		}
	}
}

func TestModuleIDStable(t *testing.T) {
	f := NewFlat("$$")
	mod := &bindings.Module{Name: "a"}
	if first, second := f.ModuleID(mod), f.ModuleID(mod); first != second {
		t.Errorf("ModuleID not stable: %q then %q", first, second)
	}
}

func TestModuleIDCollisions(t *testing.T) {
	f := NewFlat("$$")
	// Different paths can carry the same basename, and different raw
	// names can sanitize to the same id.
	a := &bindings.Module{Name: "util", Path: "lib/util.js"}
	b := &bindings.Module{Name: "util", Path: "vendor/util.js"}
	c := &bindings.Module{Name: "uti-l", Path: "uti-l.js"}

	ids := map[string]string{
		f.ModuleID(a): "a",
		f.ModuleID(b): "b",
		f.ModuleID(c): "c",
	}
	if len(ids) != 3 {
		t.Fatalf("ids collide: %v", ids)
	}
	if f.ModuleID(b) != "util2" {
		t.Errorf("second util id = %q, want util2", f.ModuleID(b))
	}
}

func TestDefaultSeparator(t *testing.T) {
	f := NewFlat("")
	if f.sep != "$$" {
		t.Errorf("sep = %q, want $$", f.sep)
	}
}

func TestParticipates(t *testing.T) {
	plain := &bindings.Module{Exports: &bindings.DeclarationList{}, Imports: &bindings.DeclarationList{}}
	if participates(plain) {
		t.Error("module without declarations participates")
	}

	importer := &bindings.Module{Exports: &bindings.DeclarationList{}, Imports: &bindings.DeclarationList{}}
	importer.Imports.Append(&bindings.Declaration{Module: importer, Source: "./a"})
	if !participates(importer) {
		t.Error("importing module does not participate")
	}

	exporter := &bindings.Module{Exports: &bindings.DeclarationList{}, Imports: &bindings.DeclarationList{}}
	exporter.Exports.Append(&bindings.Declaration{Module: exporter})
	if !participates(exporter) {
		t.Error("exporting module does not participate")
	}
}
