package bridge

import (
	"testing"

	"github.com/chazu/jtj/classload"
)

type fakeLists map[string]bool

func (f fakeLists) IsList(ref classload.TypeRef) bool {
	c, ok := ref.(classload.Class)
	return ok && f[c.Name]
}

var testLists = fakeLists{"java.util.List": true, "java.util.ArrayList": true, "lib.Rows": true}

func prim(name string) classload.TypeRef  { return classload.Primitive{Name: name} }
func class(name string) classload.TypeRef { return classload.Class{Name: name} }
func array(elem classload.TypeRef) classload.TypeRef {
	return classload.Array{Elem: elem}
}

func TestReturnKind(t *testing.T) {
	tests := []struct {
		ref  classload.TypeRef
		want BridgeableKind
	}{
		{prim("void"), KindVoid},
		{class("java.lang.String"), KindString},
		{prim("int"), KindInt},
		{class("java.lang.Integer"), KindInt},
		{prim("long"), KindLong},
		{class("java.lang.Long"), KindLong},
		{prim("boolean"), KindBool},
		{class("java.lang.Boolean"), KindBool},
		{class("php.runtime.Memory"), KindAny},
		{class("Memory"), KindAny},
		{class("php.runtime.memory.ArrayMemory"), KindList},
		{array(prim("int")), KindList},
		{array(class("php.runtime.Memory")), KindList},
		{class("java.util.List"), KindList},
		{class("java.util.ArrayList"), KindList},
		{class("lib.Rows"), KindList},
	}
	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			got, ok := ReturnKind(tt.ref, testLists)
			if !ok {
				t.Fatalf("ReturnKind(%v) unsupported, want %v", tt.ref, tt.want)
			}
			if got != tt.want {
				t.Errorf("ReturnKind(%v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestReturnKindUnsupported(t *testing.T) {
	for _, ref := range []classload.TypeRef{
		prim("double"),
		prim("float"),
		prim("byte"),
		prim("char"),
		prim("short"),
		class("java.lang.Object"),
		class("java.lang.Double"),
		class("java.util.Map"),
		class("com.example.String"),
		class("php.runtime.env.Environment"),
		class("lib.Unknown"),
	} {
		if k, ok := ReturnKind(ref, testLists); ok {
			t.Errorf("ReturnKind(%v) = %v, want unsupported", ref, k)
		}
	}
}

func TestReturnKindNilResolver(t *testing.T) {
	if _, ok := ReturnKind(class("java.util.List"), nil); ok {
		t.Error("list detection without a resolver should not match")
	}
	if k, _ := ReturnKind(array(prim("int")), nil); k != KindList {
		t.Errorf("array without resolver = %v, want LIST", k)
	}
}

func TestParamKindOf(t *testing.T) {
	tests := []struct {
		ref  classload.TypeRef
		want ParamKind
	}{
		{class("java.lang.String"), ParamString},
		{prim("int"), ParamInt},
		{class("java.lang.Integer"), ParamInt},
		{prim("long"), ParamLong},
		{class("java.lang.Long"), ParamLong},
		{prim("boolean"), ParamBool},
		{class("java.lang.Boolean"), ParamBool},
		{class("php.runtime.Memory"), ParamAny},
		{class("php.runtime.memory.ArrayMemory"), ParamArray},
		{array(class("java.lang.String")), ParamArray},
		{class("java.util.List"), ParamArray},
		{class("lib.Rows"), ParamArray},
		// Total: anything else degrades to any.
		{prim("double"), ParamAny},
		{prim("char"), ParamAny},
		{class("java.lang.Object"), ParamAny},
		{class("java.util.Map"), ParamAny},
	}
	for _, tt := range tests {
		if got := ParamKindOf(tt.ref, testLists); got != tt.want {
			t.Errorf("ParamKindOf(%v) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestIsHostInjected(t *testing.T) {
	if !IsHostInjected(class("php.runtime.env.Environment")) {
		t.Error("Environment should be host injected")
	}
	if !IsHostInjected(class("Environment")) {
		t.Error("default-package Environment should be host injected")
	}
	if IsHostInjected(class("php.runtime.env.Environments")) {
		t.Error("Environments is not the sentinel")
	}
	if IsHostInjected(array(class("php.runtime.env.Environment"))) {
		t.Error("Environment[] is not the sentinel")
	}
}

func TestKindMappings(t *testing.T) {
	php := map[BridgeableKind]string{
		KindVoid: "void", KindString: "string", KindInt: "int", KindLong: "int",
		KindBool: "bool", KindList: "array", KindAny: "any",
	}
	for k, want := range php {
		if k.PHPType() != want {
			t.Errorf("%v.PHPType() = %q, want %q", k, k.PHPType(), want)
		}
		if k.Token() == "" || k.Label() == "" {
			t.Errorf("%v has empty token or label", k)
		}
	}

	java := map[ParamKind]string{
		ParamString: "String", ParamInt: "int", ParamLong: "long",
		ParamBool: "boolean", ParamArray: "Object[]", ParamAny: "Object",
	}
	for k, want := range java {
		if k.JavaType() != want {
			t.Errorf("%v.JavaType() = %q, want %q", k, k.JavaType(), want)
		}
	}
}

func TestParseKinds(t *testing.T) {
	for _, k := range returnKinds {
		got, err := ParseBridgeableKind(k.Token())
		if err != nil || got != k {
			t.Errorf("ParseBridgeableKind(%q) = %v, %v", k.Token(), got, err)
		}
	}
	for _, k := range paramKinds {
		got, err := ParseParamKind(k.Token())
		if err != nil || got != k {
			t.Errorf("ParseParamKind(%q) = %v, %v", k.Token(), got, err)
		}
	}
	if _, err := ParseBridgeableKind("array"); err == nil {
		t.Error("array is not a return kind")
	}
	if _, err := ParseParamKind("void"); err == nil {
		t.Error("void is not a parameter kind")
	}
}
