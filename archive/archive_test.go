package archive

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chazu/jtj/internal/classtest"
)

func TestOpen(t *testing.T) {
	greeter := classtest.Class{Name: "com.example.Greeter", Access: classtest.Public}
	path := classtest.Jar(t, t.TempDir(), "lib.jar", []classtest.Class{
		greeter,
		{Name: "com.example.Greeter$Options"},
		{Name: "com.example.alpha.Util"},
		{Name: "module-info"},
		{Name: "com.example.package-info"},
	}, map[string]string{
		"com/example/messages.properties": "greeting=hi",
	})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	want := []string{"com.example.alpha.Util", "com.example.Greeter", "com.example.Greeter$Options"}
	if got := a.TypeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TypeNames = %v, want %v", got, want)
	}
	if !a.Contains("com.example.Greeter$Options") || a.Contains("module-info") {
		t.Error("Contains disagrees with TypeNames")
	}

	data, err := a.ReadClass("com.example.Greeter")
	if err != nil {
		t.Fatalf("ReadClass: %v", err)
	}
	if !bytes.Equal(data, greeter.Bytes()) {
		t.Error("ReadClass returned different bytes")
	}
	if _, err := a.ReadClass("com.example.Missing"); err == nil {
		t.Error("ReadClass of a missing type succeeded")
	}

	names := a.TypeNames()
	names[0] = "x"
	if a.TypeNames()[0] == "x" {
		t.Error("TypeNames exposed internal slice")
	}
}

func TestOpenNotAZip(t *testing.T) {
	path := touch(t, filepath.Join(t.TempDir(), "broken.jar"))
	if _, err := Open(path); err == nil {
		t.Error("Open accepted an empty file")
	}
}

func TestBinaryName(t *testing.T) {
	tests := map[string]string{
		"com/example/Greeter.class":         "com.example.Greeter",
		"com/example/Greeter$Options.class": "com.example.Greeter$Options",
		`win\style\Path.class`:              "win.style.Path",
		"Top.class":                         "Top",
	}
	for in, want := range tests {
		if got := BinaryName(in); got != want {
			t.Errorf("BinaryName(%q) = %q, want %q", in, got, want)
		}
	}
}
