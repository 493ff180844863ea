package bridge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidTypeName is returned for names that are not valid Java
	// binary names.
	ErrInvalidTypeName = errors.New("invalid type name")
	// ErrAnonymousType is returned for anonymous and local classes, which
	// cannot be referenced by name.
	ErrAnonymousType = errors.New("anonymous or local type")
)

// TypeName is a parsed binary type name. Nested types keep their enclosing
// top-level type and the chain of inner names separately, so no emitter has
// to split strings on '$'.
type TypeName struct {
	Package string   // dotted package, empty for the default package
	Outer   string   // top-level simple name
	Inner   []string // nested chain; empty for top-level types
}

// ParseTypeName parses a binary name such as "com.example.Outer$Inner".
func ParseTypeName(binary string) (TypeName, error) {
	var tn TypeName

	rest := binary
	if i := strings.LastIndexByte(binary, '.'); i >= 0 {
		tn.Package = binary[:i]
		rest = binary[i+1:]
		for _, seg := range strings.Split(tn.Package, ".") {
			if !isIdentifier(seg) {
				return TypeName{}, fmt.Errorf("%w: %q", ErrInvalidTypeName, binary)
			}
		}
	}

	parts := strings.Split(rest, "$")
	if !isIdentifier(parts[0]) {
		return TypeName{}, fmt.Errorf("%w: %q", ErrInvalidTypeName, binary)
	}
	tn.Outer = parts[0]
	for _, seg := range parts[1:] {
		if seg != "" && unicode.IsDigit(rune(seg[0])) {
			return TypeName{}, fmt.Errorf("%w: %q", ErrAnonymousType, binary)
		}
		if !isIdentifier(seg) {
			return TypeName{}, fmt.Errorf("%w: %q", ErrInvalidTypeName, binary)
		}
		tn.Inner = append(tn.Inner, seg)
	}
	return tn, nil
}

// MustParseTypeName is ParseTypeName that panics on error, for literals.
func MustParseTypeName(binary string) TypeName {
	tn, err := ParseTypeName(binary)
	if err != nil {
		panic(err)
	}
	return tn
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Nested reports whether the name denotes an inner type.
func (n TypeName) Nested() bool { return len(n.Inner) > 0 }

// String returns the binary name.
func (n TypeName) String() string {
	s := n.Outer
	if n.Nested() {
		s += "$" + strings.Join(n.Inner, "$")
	}
	if n.Package == "" {
		return s
	}
	return n.Package + "." + s
}

// SourceName is the name Java source uses to reference the type
// ("com.example.Outer.Inner").
func (n TypeName) SourceName() string {
	s := strings.Join(append([]string{n.Outer}, n.Inner...), ".")
	if n.Package == "" {
		return s
	}
	return n.Package + "." + s
}

// SimpleName is the class name a nested type is published under: the inner
// chain joined with '_', or the top-level name.
func (n TypeName) SimpleName() string {
	if !n.Nested() {
		return n.Outer
	}
	return strings.Join(n.Inner, "_")
}

// FlatName joins the top-level name and inner chain with '_'
// ("Outer_Inner"), for targets that cannot nest.
func (n TypeName) FlatName() string {
	return strings.Join(append([]string{n.Outer}, n.Inner...), "_")
}

// PackageSegments splits the package into its components.
func (n TypeName) PackageSegments() []string {
	if n.Package == "" {
		return nil
	}
	return strings.Split(n.Package, ".")
}
