package bridge

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so identical models encode to
// identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bridge: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireModel struct {
	Types []wireType `cbor:"1,keyasint"`
}

type wireType struct {
	Name    string           `cbor:"1,keyasint"`
	Methods []wireDescriptor `cbor:"2,keyasint"`
}

type wireDescriptor struct {
	Name   string   `cbor:"1,keyasint"`
	Params []string `cbor:"2,keyasint,omitempty"`
	Return string   `cbor:"3,keyasint"`
	Static bool     `cbor:"4,keyasint,omitempty"`
}

// MarshalModel serializes a model to canonical CBOR.
func MarshalModel(m *Model) ([]byte, error) {
	var w wireModel
	for _, owner := range m.owners {
		wt := wireType{Name: owner.String()}
		for _, d := range m.methods[owner.String()] {
			wd := wireDescriptor{Name: d.name, Return: d.ret.Token(), Static: d.static}
			for _, p := range d.params {
				wd.Params = append(wd.Params, p.Token())
			}
			wt.Methods = append(wt.Methods, wd)
		}
		w.Types = append(w.Types, wt)
	}
	return cborEncMode.Marshal(&w)
}

// UnmarshalModel deserializes a model written by MarshalModel.
func UnmarshalModel(data []byte) (*Model, error) {
	var w wireModel
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("bridge: unmarshal model: %w", err)
	}

	m := &Model{methods: make(map[string][]Descriptor)}
	for _, wt := range w.Types {
		owner, err := ParseTypeName(wt.Name)
		if err != nil {
			return nil, fmt.Errorf("bridge: unmarshal model: %w", err)
		}
		for _, wd := range wt.Methods {
			ret, err := ParseBridgeableKind(wd.Return)
			if err != nil {
				return nil, fmt.Errorf("bridge: unmarshal model: %s.%s: %w", wt.Name, wd.Name, err)
			}
			params := make([]ParamKind, 0, len(wd.Params))
			for _, tok := range wd.Params {
				p, err := ParseParamKind(tok)
				if err != nil {
					return nil, fmt.Errorf("bridge: unmarshal model: %s.%s: %w", wt.Name, wd.Name, err)
				}
				params = append(params, p)
			}
			m.add(NewDescriptor(owner, wd.Name, params, ret, wd.Static))
		}
	}
	return m, nil
}

// Fingerprint hashes the set of owning type names. It changes when a type
// gains or loses its bridge, and is independent of owner order.
func Fingerprint(m *Model) [32]byte {
	names := make([]string, len(m.owners))
	for i, owner := range m.owners {
		names[i] = owner.String()
	}
	sort.Strings(names)

	data, err := cborEncMode.Marshal(names)
	if err != nil {
		// Encoding a []string cannot fail.
		panic(fmt.Sprintf("bridge: fingerprint: %v", err))
	}
	return sha256.Sum256(data)
}
