package classload

import "testing"

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc   string
		params []string
		ret    string
	}{
		{"()V", nil, "void"},
		{"(I)Ljava/lang/String;", []string{"int"}, "java.lang.String"},
		{"(JZLjava/util/List;)[I", []string{"long", "boolean", "java.util.List"}, "int[]"},
		{"([[Ljava/lang/Object;D)Ljava/util/Map$Entry;", []string{"java.lang.Object[][]", "double"}, "java.util.Map$Entry"},
		{"(BCSF)Z", []string{"byte", "char", "short", "float"}, "boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params, ret, err := ParseMethodDescriptor(tt.desc)
			if err != nil {
				t.Fatalf("ParseMethodDescriptor(%q): %v", tt.desc, err)
			}
			if len(params) != len(tt.params) {
				t.Fatalf("got %d params, want %d", len(params), len(tt.params))
			}
			for i, p := range params {
				if p.String() != tt.params[i] {
					t.Errorf("param %d = %q, want %q", i, p.String(), tt.params[i])
				}
			}
			if ret.String() != tt.ret {
				t.Errorf("return = %q, want %q", ret.String(), tt.ret)
			}
		})
	}
}

func TestParseMethodDescriptorErrors(t *testing.T) {
	for _, desc := range []string{
		"",
		"V",
		"(I",
		"(V)V",
		"(Ljava/lang/String)V",
		"(I)Q",
		"(I)VV",
		"(L;)V",
	} {
		if _, _, err := ParseMethodDescriptor(desc); err == nil {
			t.Errorf("ParseMethodDescriptor(%q) succeeded, want error", desc)
		}
	}
}

func TestParseArrayParameter(t *testing.T) {
	params, _, err := ParseMethodDescriptor("([Lphp/runtime/memory/ArrayMemory;)V")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor: %v", err)
	}
	if len(params) != 1 {
		t.Fatalf("got %d params, want 1", len(params))
	}
	arr, ok := params[0].(Array)
	if !ok {
		t.Fatalf("got %T, want Array", params[0])
	}
	if arr.Elem != (Class{Name: "php.runtime.memory.ArrayMemory"}) {
		t.Errorf("elem = %v", arr.Elem)
	}
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		ref  TypeRef
		want string
	}{
		{Primitive{Name: "int"}, "int"},
		{Class{Name: "java.lang.String"}, "String"},
		{Class{Name: "php.runtime.env.Environment"}, "Environment"},
		{Class{Name: "java.util.Map$Entry"}, "Entry"},
		{Class{Name: "Memory"}, "Memory"},
		{Array{Elem: Class{Name: "php.runtime.Memory"}}, "Memory[]"},
		{Array{Elem: Array{Elem: Primitive{Name: "byte"}}}, "byte[][]"},
	}
	for _, tt := range tests {
		if got := tt.ref.SimpleName(); got != tt.want {
			t.Errorf("%v.SimpleName() = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
