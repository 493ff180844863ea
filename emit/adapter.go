package emit

import (
	"fmt"
	"path"
	"strings"

	"github.com/chazu/jtj/bridge"
)

// AdapterRoot is the Java package prefix every adapter lives under.
const AdapterRoot = "JTJ"

// AdapterClass is the adapter's class name. Nested types are flattened
// ("Outer_Inner") because an adapter package cannot also be a class.
func AdapterClass(tn bridge.TypeName) string {
	if tn.Nested() {
		return tn.FlatName()
	}
	return tn.Outer
}

// AdapterPackage is the Java package of a type's adapter.
func AdapterPackage(tn bridge.TypeName) string {
	if tn.Package == "" {
		return AdapterRoot
	}
	return AdapterRoot + "." + tn.Package
}

// AdapterQualifiedName is the adapter's fully-qualified class name.
func AdapterQualifiedName(tn bridge.TypeName) string {
	return AdapterPackage(tn) + "." + AdapterClass(tn)
}

// AdapterPath is where the adapter goes, relative to the JTJ root.
func AdapterPath(tn bridge.TypeName) string {
	return path.Join(append(tn.PackageSegments(), AdapterClass(tn)+".java")...)
}

// Adapters renders one adapter class per type in the model. Every method
// forwards statically to the original type; instance methods get the same
// shape because adapters hold no receiver.
func Adapters(m *bridge.Model) []File {
	var files []File
	for _, tn := range m.Types() {
		files = append(files, File{
			Path:   AdapterPath(tn),
			Data:   []byte(renderAdapter(tn, m.Methods(tn))),
			Source: tn.String(),
		})
	}
	return files
}

// adapterImports are the simple names an adapter refers to, in import order.
// java.lang names are implicit and never imported.
var adapterImports = []struct{ simple, qualified string }{
	{"Name", "php.runtime.annotation.Reflection.Name"},
	{"Namespace", "php.runtime.annotation.Reflection.Namespace"},
	{"Signature", "php.runtime.annotation.Reflection.Signature"},
	{"Environment", "php.runtime.env.Environment"},
	{"BaseObject", "php.runtime.lang.BaseObject"},
	{"ClassEntity", "php.runtime.reflection.ClassEntity"},
	{"String", "java.lang.String"},
	{"Object", "java.lang.Object"},
}

// adapterRefs maps each simple name to how the adapter body spells it. A
// name shadowed by the adapter class itself is written fully qualified.
func adapterRefs(class string) map[string]string {
	refs := make(map[string]string, len(adapterImports))
	for _, imp := range adapterImports {
		if imp.simple == class {
			refs[imp.simple] = imp.qualified
		} else {
			refs[imp.simple] = imp.simple
		}
	}
	return refs
}

func renderAdapter(tn bridge.TypeName, methods []bridge.Descriptor) string {
	var b strings.Builder
	class := AdapterClass(tn)
	ref := adapterRefs(class)

	fmt.Fprintf(&b, "package %s;\n", AdapterPackage(tn))
	fmt.Fprintf(&b, "// Generated by jtj from %s. Do not edit.\n\n", tn)

	for _, imp := range adapterImports {
		switch {
		case strings.HasPrefix(imp.qualified, "java.lang."), ref[imp.simple] != imp.simple:
			continue
		case imp.simple == "Name" && !tn.Nested():
			continue
		case imp.simple == "Namespace" && tn.Package == "":
			continue
		}
		fmt.Fprintf(&b, "import %s;\n", imp.qualified)
	}
	b.WriteString("\n")

	if ns := StubNamespace(tn); ns != "" {
		fmt.Fprintf(&b, "@%s(\"%s\")\n", ref["Namespace"], strings.ReplaceAll(ns, `\`, `\\`))
	}
	if tn.Nested() {
		fmt.Fprintf(&b, "@%s(\"%s\")\n", ref["Name"], tn.SimpleName())
	}
	env, entity := ref["Environment"], ref["ClassEntity"]
	fmt.Fprintf(&b, "public class %s extends %s {\n", class, ref["BaseObject"])
	fmt.Fprintf(&b, "    public %s(%s env) { super(env); }\n", class, env)
	fmt.Fprintf(&b, "    protected %s(%s entity) { super(entity); }\n", class, entity)
	fmt.Fprintf(&b, "    public %s(%s env, %s clazz) { super(env, clazz); }\n", class, env, entity)

	target := tn.SourceName()
	for _, d := range methods {
		params := d.Params()
		decl := make([]string, len(params))
		for i, p := range params {
			decl[i] = fmt.Sprintf("%s arg%d", javaType(p, ref), i+1)
		}

		static := ""
		if d.Static() {
			static = "static "
		}
		ret := ""
		if d.Return() != bridge.KindVoid {
			ret = "return "
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "    @%s\n", ref["Signature"])
		fmt.Fprintf(&b, "    public %s%s %s(%s) {\n", static, d.Return().Token(), d.Name(), strings.Join(decl, ", "))
		fmt.Fprintf(&b, "        %s%s.%s(%s);\n", ret, target, d.Name(), argList(len(params), ""))
		b.WriteString("    }\n")
	}

	b.WriteString("}\n")
	return b.String()
}

// javaType spells a parameter type, qualifying its element type when the
// adapter class shadows it.
func javaType(p bridge.ParamKind, ref map[string]string) string {
	typ := p.JavaType()
	elem, dims := strings.CutSuffix(typ, "[]")
	if r, ok := ref[elem]; ok {
		typ = r
		if dims {
			typ += "[]"
		}
	}
	return typ
}
