// Package classtest builds minimal class files and jars for tests.
package classtest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Access flags.
const (
	Public    uint16 = 0x0001
	Private   uint16 = 0x0002
	Protected uint16 = 0x0004
	Static    uint16 = 0x0008
	Bridge    uint16 = 0x0040
	Interface uint16 = 0x0200
	Abstract  uint16 = 0x0400
	Synthetic uint16 = 0x1000
)

// Class describes a class file to generate. Names are dotted binary names.
type Class struct {
	Name       string
	Super      string // defaults to java.lang.Object
	Interfaces []string
	Access     uint16
	Methods    []Method
}

// Method is a declared method without a Code attribute.
type Method struct {
	Access     uint16
	Name       string
	Descriptor string
}

// M is shorthand for a Method.
func M(access uint16, name, desc string) Method {
	return Method{Access: access, Name: name, Descriptor: desc}
}

type pool struct {
	buf   bytes.Buffer
	count uint16
	utf8  map[string]uint16
	class map[string]uint16
}

func (p *pool) addUtf8(s string) uint16 {
	if idx, ok := p.utf8[s]; ok {
		return idx
	}
	p.count++
	p.buf.WriteByte(1)
	_ = binary.Write(&p.buf, binary.BigEndian, uint16(len(s)))
	p.buf.WriteString(s)
	p.utf8[s] = p.count
	return p.count
}

func (p *pool) addClass(dotted string) uint16 {
	internal := strings.ReplaceAll(dotted, ".", "/")
	if idx, ok := p.class[internal]; ok {
		return idx
	}
	nameIdx := p.addUtf8(internal)
	p.count++
	p.buf.WriteByte(7)
	_ = binary.Write(&p.buf, binary.BigEndian, nameIdx)
	p.class[internal] = p.count
	return p.count
}

// Bytes renders the class file.
func (c Class) Bytes() []byte {
	p := &pool{utf8: map[string]uint16{}, class: map[string]uint16{}}

	this := p.addClass(c.Name)
	super := c.Super
	if super == "" {
		super = "java.lang.Object"
	}
	superIdx := p.addClass(super)
	ifaces := make([]uint16, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		ifaces[i] = p.addClass(iface)
	}
	type methodIdx struct{ access, name, desc uint16 }
	methods := make([]methodIdx, len(c.Methods))
	for i, m := range c.Methods {
		methods[i] = methodIdx{m.Access, p.addUtf8(m.Name), p.addUtf8(m.Descriptor)}
	}

	var out bytes.Buffer
	w := func(v any) { _ = binary.Write(&out, binary.BigEndian, v) }
	w(uint32(0xCAFEBABE))
	w(uint16(0))  // minor
	w(uint16(52)) // major: Java 8
	w(p.count + 1)
	out.Write(p.buf.Bytes())
	w(c.Access)
	w(this)
	w(superIdx)
	w(uint16(len(ifaces)))
	for _, idx := range ifaces {
		w(idx)
	}
	w(uint16(0)) // fields
	w(uint16(len(methods)))
	for _, m := range methods {
		w(m.access)
		w(m.name)
		w(m.desc)
		w(uint16(0)) // attributes
	}
	w(uint16(0)) // class attributes
	return out.Bytes()
}

// Source is an in-memory class source keyed by binary name.
type Source map[string][]byte

// NewSource renders classes into a Source.
func NewSource(classes ...Class) Source {
	s := make(Source, len(classes))
	for _, c := range classes {
		s[c.Name] = c.Bytes()
	}
	return s
}

func (s Source) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Source) ReadClass(name string) ([]byte, error) {
	data, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("class %s not found", name)
	}
	return data, nil
}

// Jar writes the classes into dir/name and returns the jar path. Extra
// entries (path → content) are added verbatim.
func Jar(t testing.TB, dir, name string, classes []Class, extra map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(path string, data []byte) {
		f, err := zw.Create(path)
		if err != nil {
			t.Fatalf("creating jar entry %s: %v", path, err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatalf("writing jar entry %s: %v", path, err)
		}
	}
	if _, err := zw.Create("META-INF/"); err != nil {
		t.Fatalf("creating jar dir: %v", err)
	}
	add("META-INF/MANIFEST.MF", []byte("Manifest-Version: 1.0\n"))
	for _, c := range classes {
		add(strings.ReplaceAll(c.Name, ".", "/")+".class", c.Bytes())
	}
	for path, content := range extra {
		add(path, []byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing jar: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing jar: %v", err)
	}
	return path
}
