// Package bridge normalises the public API of loaded Java types into the
// bridge model that drives stub and adapter generation.
package bridge

import "strings"

// Descriptor is one accepted method. It is immutable once built.
type Descriptor struct {
	owner  TypeName
	name   string
	params []ParamKind
	ret    BridgeableKind
	static bool
}

// NewDescriptor builds a descriptor. params is copied.
func NewDescriptor(owner TypeName, name string, params []ParamKind, ret BridgeableKind, static bool) Descriptor {
	return Descriptor{
		owner:  owner,
		name:   name,
		params: append([]ParamKind(nil), params...),
		ret:    ret,
		static: static,
	}
}

func (d Descriptor) Owner() TypeName        { return d.owner }
func (d Descriptor) Name() string           { return d.name }
func (d Descriptor) Return() BridgeableKind { return d.ret }
func (d Descriptor) Static() bool           { return d.static }
func (d Descriptor) Arity() int             { return len(d.params) }

// Params returns a copy of the parameter kinds.
func (d Descriptor) Params() []ParamKind {
	return append([]ParamKind(nil), d.params...)
}

// Signature renders "name(int, string)".
func (d Descriptor) Signature() string {
	tokens := make([]string, len(d.params))
	for i, p := range d.params {
		tokens[i] = p.Token()
	}
	return d.name + "(" + strings.Join(tokens, ", ") + ")"
}

// Model groups descriptors by owning type. Owner order and per-owner method
// order are the order in which Build saw them.
type Model struct {
	owners  []TypeName
	methods map[string][]Descriptor
}

// Build folds per-type results, in the order given, into a Model. Types
// without accepted methods get no entry; overloads are kept as separate
// descriptors.
func Build(results []TypeResult) *Model {
	m := &Model{methods: make(map[string][]Descriptor)}
	for _, r := range results {
		for _, d := range r.Accepted {
			m.add(d)
		}
	}
	return m
}

func (m *Model) add(d Descriptor) {
	key := d.owner.String()
	if _, ok := m.methods[key]; !ok {
		m.owners = append(m.owners, d.owner)
	}
	m.methods[key] = append(m.methods[key], d)
}

// Types returns the owning types in model order.
func (m *Model) Types() []TypeName {
	return append([]TypeName(nil), m.owners...)
}

// Methods returns the descriptors of one owner.
func (m *Model) Methods(owner TypeName) []Descriptor {
	return append([]Descriptor(nil), m.methods[owner.String()]...)
}

// All returns every descriptor, owner by owner.
func (m *Model) All() []Descriptor {
	var out []Descriptor
	for _, owner := range m.owners {
		out = append(out, m.methods[owner.String()]...)
	}
	return out
}

// Len is the number of descriptors in the model.
func (m *Model) Len() int {
	n := 0
	for _, ds := range m.methods {
		n += len(ds)
	}
	return n
}

// Empty reports whether the model has no owners.
func (m *Model) Empty() bool { return len(m.owners) == 0 }
