package bridge

import "fmt"

// BridgeableKind is the closed set of types a bridged method may return.
// The only values are the Kind* variables below.
type BridgeableKind interface {
	// Label is the upper-case name used in reports ("STRING").
	Label() string
	// Token is the lower-case kind name ("string").
	Token() string
	// PHPType is the type used in stub @return tags.
	PHPType() string
	bridgeable()
}

// ParamKind is the closed set of parameter types. It differs from
// BridgeableKind: void never appears and lists surface as arrays.
type ParamKind interface {
	// Token is the lower-case kind name ("array").
	Token() string
	// JavaType is the Java type of the adapter parameter ("Object[]").
	JavaType() string
	param()
}

type returnKind struct{ label, token, php string }

func (k returnKind) Label() string   { return k.label }
func (k returnKind) Token() string   { return k.token }
func (k returnKind) PHPType() string { return k.php }
func (k returnKind) String() string  { return k.label }
func (returnKind) bridgeable()       {}

type paramKind struct{ token, java string }

func (k paramKind) Token() string    { return k.token }
func (k paramKind) JavaType() string { return k.java }
func (k paramKind) String() string   { return k.token }
func (paramKind) param()             {}

// Return kinds.
var (
	KindVoid   BridgeableKind = returnKind{"VOID", "void", "void"}
	KindString BridgeableKind = returnKind{"STRING", "string", "string"}
	KindInt    BridgeableKind = returnKind{"INT", "int", "int"}
	KindLong   BridgeableKind = returnKind{"LONG", "long", "int"}
	KindBool   BridgeableKind = returnKind{"BOOL", "bool", "bool"}
	KindAny    BridgeableKind = returnKind{"ANY", "any", "any"}
	KindList   BridgeableKind = returnKind{"LIST", "list", "array"}
)

// Parameter kinds.
var (
	ParamString ParamKind = paramKind{"string", "String"}
	ParamInt    ParamKind = paramKind{"int", "int"}
	ParamLong   ParamKind = paramKind{"long", "long"}
	ParamBool   ParamKind = paramKind{"bool", "boolean"}
	ParamAny    ParamKind = paramKind{"any", "Object"}
	ParamArray  ParamKind = paramKind{"array", "Object[]"}
)

var returnKinds = []BridgeableKind{KindVoid, KindString, KindInt, KindLong, KindBool, KindAny, KindList}

var paramKinds = []ParamKind{ParamString, ParamInt, ParamLong, ParamBool, ParamAny, ParamArray}

// ParseBridgeableKind looks up a return kind by token.
func ParseBridgeableKind(token string) (BridgeableKind, error) {
	for _, k := range returnKinds {
		if k.Token() == token {
			return k, nil
		}
	}
	return nil, fmt.Errorf("unknown return kind %q", token)
}

// ParseParamKind looks up a parameter kind by token.
func ParseParamKind(token string) (ParamKind, error) {
	for _, k := range paramKinds {
		if k.Token() == token {
			return k, nil
		}
	}
	return nil, fmt.Errorf("unknown parameter kind %q", token)
}
