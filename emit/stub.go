package emit

import (
	"fmt"
	"path"
	"strings"

	"github.com/chazu/jtj/bridge"
)

// StubPath is where the PHP stub of a type goes, relative to the sdk root.
// Nested types live in a directory named after their top-level type.
func StubPath(tn bridge.TypeName) string {
	parts := tn.PackageSegments()
	if tn.Nested() {
		parts = append(parts, tn.Outer)
	}
	return path.Join(append(parts, tn.SimpleName()+".php")...)
}

// StubNamespace is the PHP namespace of a stub: the Java package, never
// including the enclosing type.
func StubNamespace(tn bridge.TypeName) string {
	return strings.Join(tn.PackageSegments(), `\`)
}

// Stubs renders one PHP stub per type in the model.
func Stubs(m *bridge.Model) []File {
	var files []File
	for _, tn := range m.Types() {
		files = append(files, File{
			Path:   StubPath(tn),
			Data:   []byte(renderStub(tn, m.Methods(tn))),
			Source: tn.String(),
		})
	}
	return files
}

func renderStub(tn bridge.TypeName, methods []bridge.Descriptor) string {
	var b strings.Builder

	b.WriteString("<?php\n")
	if ns := StubNamespace(tn); ns != "" {
		fmt.Fprintf(&b, "namespace %s;\n", ns)
	}
	b.WriteString("\n")
	b.WriteString("/**\n")
	fmt.Fprintf(&b, " * Class %s\n", tn.SimpleName())
	b.WriteString(" *\n")
	fmt.Fprintf(&b, " * Generated by jtj from the Java class %s.\n", tn)
	b.WriteString(" * Do not edit: regenerate instead.\n")
	b.WriteString(" */\n")
	fmt.Fprintf(&b, "class %s\n{\n", tn.SimpleName())

	for i, d := range methods {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("    /**\n")
		for j := 0; j < d.Arity(); j++ {
			fmt.Fprintf(&b, "     * @param string $arg%d\n", j+1)
		}
		fmt.Fprintf(&b, "     * @return %s\n", d.Return().PHPType())
		b.WriteString("     */\n")

		static := ""
		if d.Static() {
			static = "static "
		}
		fmt.Fprintf(&b, "    public %sfunction %s(%s) {}\n", static, d.Name(), argList(d.Arity(), "$"))
	}

	b.WriteString("}\n")
	return b.String()
}
