package bridge

import "github.com/chazu/jtj/classload"

// RejectReason says why a member was not bridged. Rejections are normal
// filtering, not errors.
type RejectReason string

const (
	RejectNonPublic   RejectReason = "non-public"
	RejectUnsupported RejectReason = "unsupported return type"
	// RejectSynthetic is only used with Options.SkipSynthetic.
	RejectSynthetic   RejectReason = "synthetic"
)

// Rejection records a member that was seen but not bridged.
type Rejection struct {
	Member string
	Return string // return type as written in Java
	Reason RejectReason
}

// Outcome places one member in class-file order. Index points into
// Accepted when Accepted is set and into Rejected otherwise.
type Outcome struct {
	Accepted bool
	Index    int
}

// TypeResult is the outcome of extracting one type.
type TypeResult struct {
	Name     TypeName
	Total    int // every declared member, accepted or not
	Accepted []Descriptor
	Rejected []Rejection
	Order    []Outcome
}

// Listing returns every member in class-file order. A result built without
// an Order lists its accepted members first.
func (r TypeResult) Listing() []Outcome {
	if r.Order != nil {
		return r.Order
	}
	out := make([]Outcome, 0, len(r.Accepted)+len(r.Rejected))
	for i := range r.Accepted {
		out = append(out, Outcome{Accepted: true, Index: i})
	}
	for i := range r.Rejected {
		out = append(out, Outcome{Index: i})
	}
	return out
}

// Options adjusts member filtering.
type Options struct {
	// SkipSynthetic rejects compiler-generated synthetic and bridge
	// methods. By default they are bridged like any public method.
	SkipSynthetic bool
}

// Extract filters and normalises the declared members of t, in declaration
// order.
func Extract(name TypeName, t *classload.Type, lists ListResolver, opts Options) TypeResult {
	res := TypeResult{Name: name}
	reject := func(m classload.Member, reason RejectReason) {
		res.Order = append(res.Order, Outcome{Index: len(res.Rejected)})
		res.Rejected = append(res.Rejected, Rejection{m.Name, m.Return.String(), reason})
	}

	for _, m := range t.Members {
		res.Total++

		if !m.Public {
			reject(m, RejectNonPublic)
			continue
		}
		if m.Synthetic && opts.SkipSynthetic {
			reject(m, RejectSynthetic)
			continue
		}

		ret, ok := ReturnKind(m.Return, lists)
		if !ok {
			reject(m, RejectUnsupported)
			continue
		}

		var params []ParamKind
		for _, p := range m.Params {
			if IsHostInjected(p) {
				continue
			}
			params = append(params, ParamKindOf(p, lists))
		}

		res.Order = append(res.Order, Outcome{Accepted: true, Index: len(res.Accepted)})
		res.Accepted = append(res.Accepted, NewDescriptor(name, m.Name, params, ret, m.Static))
	}
	return res
}
