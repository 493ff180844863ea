package emit

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chazu/jtj/bridge"
)

// Naming selects how the registration extension is named.
type Naming string

const (
	// NamingHash derives the name from the model's fingerprint, so the same
	// archive always yields the same name.
	NamingHash Naming = "hash"
	// NamingRandom draws a fresh name every run.
	NamingRandom Naming = "random"
)

// ParseNaming validates a naming mode. Empty means NamingHash.
func ParseNaming(s string) (Naming, error) {
	switch Naming(strings.ToLower(strings.TrimSpace(s))) {
	case "", NamingHash:
		return NamingHash, nil
	case NamingRandom:
		return NamingRandom, nil
	}
	return "", fmt.Errorf("unknown manifest naming %q (want hash or random)", s)
}

const (
	nameLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	nameLength    = 6
	manifestClass = "Extension"
	// RegisterDir holds the extension, relative to the JTJ root.
	RegisterDir = "register"
)

// manifestNames are the simple names the extension body refers to. Status
// resolves to the inherited Extension.Status, not an import.
var manifestNames = []string{"CompileScope", "Extension", "Status", "String", "Override"}

// ManifestName returns six letters followed by "Extension".
func ManifestName(m *bridge.Model, naming Naming) string {
	var b strings.Builder
	if naming == NamingRandom {
		for i := 0; i < nameLength; i++ {
			b.WriteByte(nameLetters[rand.IntN(len(nameLetters))])
		}
	} else {
		fp := bridge.Fingerprint(m)
		for i := 0; i < nameLength; i++ {
			b.WriteByte(nameLetters[int(fp[i])%len(nameLetters)])
		}
	}
	b.WriteString(manifestClass)
	return b.String()
}

// Register renders the extension that registers every adapter in the model.
func Register(m *bridge.Model, name string) File {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s.%s;\n", AdapterRoot, RegisterDir)
	b.WriteString("// Generated by jtj. Do not edit.\n\n")
	b.WriteString("import php.runtime.env.CompileScope;\n")
	b.WriteString("import php.runtime.ext.support.Extension;\n")

	// Adapters from different packages may share a simple name; only the
	// first is imported and the rest are referenced by qualified name. Names
	// the extension body already uses are never imported.
	imported := map[string]bool{name: true}
	for _, reserved := range manifestNames {
		imported[reserved] = true
	}
	var refs []string
	for _, tn := range m.Types() {
		class := AdapterClass(tn)
		if imported[class] {
			refs = append(refs, AdapterQualifiedName(tn))
			continue
		}
		imported[class] = true
		fmt.Fprintf(&b, "import %s;\n", AdapterQualifiedName(tn))
		refs = append(refs, class)
	}

	fmt.Fprintf(&b, "\npublic class %s extends Extension {\n", name)
	fmt.Fprintf(&b, "    public %s() {}\n\n", name)
	b.WriteString("    @Override\n")
	b.WriteString("    public Status getStatus() { return Status.EXPERIMENTAL; }\n\n")
	b.WriteString("    @Override\n")
	b.WriteString("    public String[] getPackageNames() { return new String[]{ \"jtj\" }; }\n\n")
	b.WriteString("    @Override\n")
	b.WriteString("    public void onRegister(CompileScope scope) {\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "        registerClass(scope, %s.class);\n", ref)
	}
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return File{
		Path: RegisterDir + "/" + name + ".java",
		Data: []byte(b.String()),
	}
}
