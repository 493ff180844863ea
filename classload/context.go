// Package classload resolves type names from a class archive to their
// declared members, inside an isolated loading context that only sees the
// archive itself and a set of provided platform packages.
package classload

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	parser "github.com/wreulicke/classfile-parser"
)

var log = commonlog.GetLogger("jtj.classload")

var (
	// ErrMissingDependency means a supertype is neither in the archive nor
	// provided by the platform.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrCircularHierarchy means a type is its own supertype.
	ErrCircularHierarchy = errors.New("circular class hierarchy")
	// ErrMalformedClass means the class file could not be parsed.
	ErrMalformedClass = errors.New("malformed class file")
)

// LoadError describes why a type could not be loaded.
type LoadError struct {
	Name   string // type being loaded
	Detail string // e.g. the missing supertype
	Err    error
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("loading %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("loading %s: %v: %s", e.Name, e.Err, e.Detail)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DefaultProvided lists the package prefixes the platform class loader
// supplies.
var DefaultProvided = []string{"java.", "javax.", "jdk.", "sun.", "com.sun."}

// ClassSource supplies raw class files by binary name.
type ClassSource interface {
	Contains(binaryName string) bool
	ReadClass(binaryName string) ([]byte, error)
}

// Type is a loaded class or interface.
type Type struct {
	Name       string // dotted binary name
	Super      string // empty for java.lang.Object
	Interfaces []string
	Members    []Member // declared methods in class-file order
}

// Member is a declared method. Constructors and static initialisers are not
// members.
type Member struct {
	Name      string
	Public    bool
	Static    bool
	Synthetic bool // synthetic or bridge
	Params    []TypeRef
	Return    TypeRef
}

// Context is an isolated loading context over one ClassSource. It is not
// safe for concurrent use.
type Context struct {
	src      ClassSource
	provided []string

	parsed   map[string]*Type
	parseErr map[string]error
	linked   map[string]error
}

// NewContext creates a loading context. Provided prefixes may be given in
// dotted ("php.runtime.") or internal ("php/runtime/") form.
func NewContext(src ClassSource, provided []string) *Context {
	c := &Context{
		src:      src,
		parsed:   make(map[string]*Type),
		parseErr: make(map[string]error),
		linked:   make(map[string]error),
	}
	for _, p := range provided {
		p = strings.ReplaceAll(strings.TrimSpace(p), "/", ".")
		if p != "" {
			c.provided = append(c.provided, p)
		}
	}
	return c
}

// IsProvided reports whether name belongs to a provided package.
func (c *Context) IsProvided(name string) bool {
	for _, p := range c.provided {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Load parses the named type and links its supertypes. A type whose
// hierarchy cannot be resolved fails to load even if its own class file is
// well formed.
func (c *Context) Load(name string) (*Type, error) {
	t, err := c.parse(name)
	if err != nil {
		return nil, err
	}
	if err := c.link(name, map[string]bool{}); err != nil {
		return nil, err
	}
	log.Debugf("loaded %s (%d members)", name, len(t.Members))
	return t, nil
}

func (c *Context) link(name string, visiting map[string]bool) error {
	if err, done := c.linked[name]; done {
		return err
	}
	if visiting[name] {
		return &LoadError{Name: name, Err: ErrCircularHierarchy}
	}
	visiting[name] = true
	defer delete(visiting, name)

	t, err := c.parse(name)
	if err != nil {
		return err
	}

	var linkErr error
	for _, super := range t.supertypes() {
		if c.IsProvided(super) {
			continue
		}
		if !c.src.Contains(super) {
			linkErr = &LoadError{Name: name, Detail: super, Err: ErrMissingDependency}
			break
		}
		if err := c.link(super, visiting); err != nil {
			linkErr = &LoadError{Name: name, Detail: super, Err: unwrapLoad(err)}
			break
		}
	}
	c.linked[name] = linkErr
	return linkErr
}

func unwrapLoad(err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}

func (c *Context) parse(name string) (*Type, error) {
	if t, ok := c.parsed[name]; ok {
		return t, nil
	}
	if err, ok := c.parseErr[name]; ok {
		return nil, err
	}

	t, err := c.readType(name)
	if err != nil {
		c.parseErr[name] = err
		return nil, err
	}
	c.parsed[name] = t
	return t, nil
}

func (c *Context) readType(name string) (*Type, error) {
	data, err := c.src.ReadClass(name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	cf, err := parser.New(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
	}
	cp := cf.ConstantPool

	this, err := cf.ThisClassName()
	if err != nil {
		return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
	}
	if dotted(this) != name {
		return nil, &LoadError{Name: name, Detail: "class file declares " + dotted(this), Err: ErrMalformedClass}
	}

	t := &Type{Name: name}
	if cf.SuperClass != 0 {
		super, err := cf.SuperClassName()
		if err != nil {
			return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
		}
		t.Super = dotted(super)
	}
	for _, idx := range cf.Interfaces {
		iface, err := cp.GetClassName(idx)
		if err != nil {
			return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
		}
		t.Interfaces = append(t.Interfaces, dotted(iface))
	}

	for _, m := range cf.Methods {
		mname, err := m.Name(cp)
		if err != nil {
			return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
		}
		if mname == "<init>" || mname == "<clinit>" {
			continue
		}
		desc, err := m.Descriptor(cp)
		if err != nil {
			return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
		}
		params, ret, err := ParseMethodDescriptor(desc)
		if err != nil {
			return nil, &LoadError{Name: name, Detail: err.Error(), Err: ErrMalformedClass}
		}
		t.Members = append(t.Members, Member{
			Name:      mname,
			Public:    m.AccessFlags.Is(parser.ACC_PUBLIC),
			Static:    m.AccessFlags.Is(parser.ACC_STATIC),
			Synthetic: m.AccessFlags.Is(parser.ACC_SYNTHETIC) || m.AccessFlags.Is(parser.ACC_BRIDGE),
			Params:    params,
			Return:    ret,
		})
	}
	return t, nil
}

func (t *Type) supertypes() []string {
	var out []string
	if t.Super != "" {
		out = append(out, t.Super)
	}
	return append(out, t.Interfaces...)
}

func dotted(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}
