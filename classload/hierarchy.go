package classload

const listInterface = "java.util.List"

// platformLists are the platform types assignable to java.util.List. Only
// the archive's own classes are walked; platform types are taken from here.
var platformLists = setOf(
	listInterface,
	"java.util.ArrayList",
	"java.util.LinkedList",
	"java.util.Vector",
	"java.util.Stack",
	"java.util.AbstractList",
	"java.util.AbstractSequentialList",
	"java.util.concurrent.CopyOnWriteArrayList",
	"javax.management.AttributeList",
	"javax.management.relation.RoleList",
	"javax.management.relation.RoleUnresolvedList",
)

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// IsList reports whether ref is java.util.List or assignable to it. Array
// types are not lists here; callers classify arrays on their own.
func (c *Context) IsList(ref TypeRef) bool {
	cls, ok := ref.(Class)
	if !ok {
		return false
	}
	return c.assignableToList(cls.Name, map[string]bool{})
}

func (c *Context) assignableToList(name string, seen map[string]bool) bool {
	if platformLists[name] {
		return true
	}
	if seen[name] || !c.src.Contains(name) {
		return false
	}
	seen[name] = true

	t, err := c.parse(name)
	if err != nil {
		return false
	}
	for _, super := range t.supertypes() {
		if c.assignableToList(super, seen) {
			return true
		}
	}
	return false
}
