package emit

import (
	"strings"
	"testing"

	"github.com/chazu/jtj/bridge"
)

func TestParseNaming(t *testing.T) {
	tests := []struct {
		in      string
		want    Naming
		wantErr bool
	}{
		{"", NamingHash, false},
		{"hash", NamingHash, false},
		{" Random ", NamingRandom, false},
		{"uuid", "", true},
	}
	for _, tt := range tests {
		got, err := ParseNaming(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNaming(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNaming(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestManifestName(t *testing.T) {
	m := greeterModel()
	for _, naming := range []Naming{NamingHash, NamingRandom} {
		name := ManifestName(m, naming)
		if len(name) != nameLength+len(manifestClass) || !strings.HasSuffix(name, manifestClass) {
			t.Errorf("%s: malformed name %q", naming, name)
		}
		for _, r := range name[:nameLength] {
			if !strings.ContainsRune(nameLetters, r) {
				t.Errorf("%s: %q contains %q", naming, name, r)
			}
		}
	}

	other := bridge.Build([]bridge.TypeResult{{Name: greeter, Accepted: []bridge.Descriptor{
		bridge.NewDescriptor(greeter, "log", nil, bridge.KindVoid, false),
	}}})
	if ManifestName(m, NamingHash) == ManifestName(other, NamingHash) {
		t.Error("different type sets share a manifest name")
	}
}

func TestRegisterDuplicateSimpleNames(t *testing.T) {
	a := bridge.MustParseTypeName("a.Util")
	b := bridge.MustParseTypeName("b.Util")
	m := bridge.Build([]bridge.TypeResult{
		{Name: a, Accepted: []bridge.Descriptor{bridge.NewDescriptor(a, "x", nil, bridge.KindVoid, true)}},
		{Name: b, Accepted: []bridge.Descriptor{bridge.NewDescriptor(b, "y", nil, bridge.KindVoid, true)}},
	})

	f := Register(m, "AbcdefExtension")
	if f.Path != "register/AbcdefExtension.java" {
		t.Errorf("Path = %q", f.Path)
	}
	src := string(f.Data)
	for _, want := range []string{
		"import JTJ.a.Util;\n",
		"registerClass(scope, Util.class);\n",
		"registerClass(scope, JTJ.b.Util.class);\n",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("manifest missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "import JTJ.b.Util;") {
		t.Errorf("clashing adapter imported twice:\n%s", src)
	}
}

func TestRegisterReservedNames(t *testing.T) {
	for _, simple := range []string{"Extension", "CompileScope", "Status", "String", "Override"} {
		t.Run(simple, func(t *testing.T) {
			tn := bridge.MustParseTypeName("lib." + simple)
			m := bridge.Build([]bridge.TypeResult{
				{Name: tn, Accepted: []bridge.Descriptor{bridge.NewDescriptor(tn, "x", nil, bridge.KindVoid, true)}},
			})
			src := string(Register(m, "QwertyExtension").Data)
			if strings.Contains(src, "import JTJ.lib."+simple+";") {
				t.Errorf("adapter import shadows %s in the extension body:\n%s", simple, src)
			}
			if !strings.Contains(src, "registerClass(scope, JTJ.lib."+simple+".class);") {
				t.Errorf("adapter not registered by qualified name:\n%s", src)
			}
		})
	}
}

func TestRegisterEmptyModel(t *testing.T) {
	m := bridge.Build(nil)
	f := Register(m, ManifestName(m, NamingHash))
	src := string(f.Data)
	if !strings.Contains(src, "public void onRegister(CompileScope scope) {\n    }\n") {
		t.Errorf("empty model should register nothing:\n%s", src)
	}
	if strings.Contains(src, "import JTJ.") {
		t.Errorf("empty model imports an adapter:\n%s", src)
	}
}
