package bridge

import "github.com/chazu/jtj/classload"

// Sentinel simple names of the host runtime's types.
const (
	memoryType      = "Memory"
	arrayMemoryType = "ArrayMemory"
	environmentType = "Environment"
)

// ListResolver reports whether a class reference is assignable to
// java.util.List.
type ListResolver interface {
	IsList(ref classload.TypeRef) bool
}

type shape int

const (
	shapeUnsupported shape = iota
	shapeVoid
	shapeString
	shapeInt
	shapeLong
	shapeBool
	shapeAny
	shapeList
)

// classify applies the mapping rules in precedence order; the first match
// wins.
func classify(ref classload.TypeRef, lists ListResolver) shape {
	switch r := ref.(type) {
	case classload.Primitive:
		switch r.Name {
		case "void":
			return shapeVoid
		case "int":
			return shapeInt
		case "long":
			return shapeLong
		case "boolean":
			return shapeBool
		}
		return shapeUnsupported
	case classload.Array:
		return shapeList
	case classload.Class:
		switch r.Name {
		case "java.lang.String":
			return shapeString
		case "java.lang.Integer":
			return shapeInt
		case "java.lang.Long":
			return shapeLong
		case "java.lang.Boolean":
			return shapeBool
		}
		switch r.SimpleName() {
		case memoryType:
			return shapeAny
		case arrayMemoryType:
			return shapeList
		}
		if lists != nil && lists.IsList(r) {
			return shapeList
		}
	}
	return shapeUnsupported
}

// ReturnKind maps a return type to its bridgeable kind. The second result is
// false when the type cannot be bridged, which excludes the method.
func ReturnKind(ref classload.TypeRef, lists ListResolver) (BridgeableKind, bool) {
	switch classify(ref, lists) {
	case shapeVoid:
		return KindVoid, true
	case shapeString:
		return KindString, true
	case shapeInt:
		return KindInt, true
	case shapeLong:
		return KindLong, true
	case shapeBool:
		return KindBool, true
	case shapeAny:
		return KindAny, true
	case shapeList:
		return KindList, true
	}
	return nil, false
}

// ParamKindOf maps a parameter type. Unlike ReturnKind it is total:
// anything unrecognised becomes ParamAny.
func ParamKindOf(ref classload.TypeRef, lists ListResolver) ParamKind {
	switch classify(ref, lists) {
	case shapeString:
		return ParamString
	case shapeInt:
		return ParamInt
	case shapeLong:
		return ParamLong
	case shapeBool:
		return ParamBool
	case shapeList:
		return ParamArray
	}
	return ParamAny
}

// IsHostInjected reports whether a parameter is the runtime's Environment,
// which the host supplies and bridge consumers never see.
func IsHostInjected(ref classload.TypeRef) bool {
	return ref.SimpleName() == environmentType
}
