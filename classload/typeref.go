package classload

import (
	"fmt"
	"strings"
)

// TypeRef is a parsed JVM field type: a Primitive, a Class or an Array.
type TypeRef interface {
	typeRef()
	// String renders the type the way Java source spells it.
	String() string
	// SimpleName mirrors Class.getSimpleName.
	SimpleName() string
}

// Primitive is one of the JVM base types, or void in return position.
type Primitive struct {
	Name string // "int", "boolean", "void", ...
}

// Class is a reference to a named class or interface.
type Class struct {
	Name string // dotted binary name, e.g. "java.util.Map$Entry"
}

// Array is an array of Elem.
type Array struct {
	Elem TypeRef
}

func (Primitive) typeRef() {}
func (Class) typeRef()     {}
func (Array) typeRef()     {}

func (p Primitive) String() string     { return p.Name }
func (p Primitive) SimpleName() string { return p.Name }

func (c Class) String() string { return c.Name }

func (c Class) SimpleName() string {
	name := c.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (a Array) String() string     { return a.Elem.String() + "[]" }
func (a Array) SimpleName() string { return a.Elem.SimpleName() + "[]" }

var primitives = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseMethodDescriptor splits a method descriptor such as
// "(ILjava/lang/String;)V" into its parameter and return types.
func ParseMethodDescriptor(desc string) ([]TypeRef, TypeRef, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, nil, fmt.Errorf("malformed method descriptor %q", desc)
	}
	pos := 1
	var params []TypeRef
	for pos < len(desc) && desc[pos] != ')' {
		t, err := parseFieldType(desc, &pos, false)
		if err != nil {
			return nil, nil, fmt.Errorf("descriptor %q: %w", desc, err)
		}
		params = append(params, t)
	}
	if pos >= len(desc) {
		return nil, nil, fmt.Errorf("descriptor %q: missing ')'", desc)
	}
	pos++

	ret, err := parseFieldType(desc, &pos, true)
	if err != nil {
		return nil, nil, fmt.Errorf("descriptor %q: %w", desc, err)
	}
	if pos != len(desc) {
		return nil, nil, fmt.Errorf("descriptor %q: trailing data", desc)
	}
	return params, ret, nil
}

func parseFieldType(desc string, pos *int, allowVoid bool) (TypeRef, error) {
	if *pos >= len(desc) {
		return nil, fmt.Errorf("unexpected end of descriptor")
	}
	ch := desc[*pos]
	*pos++

	if name, ok := primitives[ch]; ok {
		return Primitive{Name: name}, nil
	}
	switch ch {
	case 'V':
		if !allowVoid {
			return nil, fmt.Errorf("void is only valid as a return type")
		}
		return Primitive{Name: "void"}, nil
	case '[':
		elem, err := parseFieldType(desc, pos, false)
		if err != nil {
			return nil, err
		}
		return Array{Elem: elem}, nil
	case 'L':
		end := strings.IndexByte(desc[*pos:], ';')
		if end <= 0 {
			return nil, fmt.Errorf("unterminated class type at offset %d", *pos-1)
		}
		internal := desc[*pos : *pos+end]
		*pos += end + 1
		return Class{Name: strings.ReplaceAll(internal, "/", ".")}, nil
	default:
		return nil, fmt.Errorf("unknown type tag %q at offset %d", ch, *pos-1)
	}
}
