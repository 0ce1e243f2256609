package value

import "strings"

// Qualified is a deferred selector application: a source value plus an
// ordered chain of selectors not yet applied. Appending a selector to an
// already-Qualified value grows the chain instead of applying immediately;
// Resolve applies the whole chain left-to-right against Source.
//
// Folding successive Keyed selectors into one (so the chain never carries
// two adjacent keyed selectors) is the responsibility of whoever appends —
// see selector.Append, which has access to the concrete Keyed type.
type Qualified struct {
	Source Value
	Chain  []Selector
}

// NewQualified wraps source with an empty selector chain.
func NewQualified(source Value) *Qualified {
	return &Qualified{Source: source}
}

func (q *Qualified) Kind() Kind { return KindQualified }

func (q *Qualified) Display() string {
	var b strings.Builder
	b.WriteString(q.Source.Display())
	for range q.Chain {
		b.WriteString("(...)")
	}
	return b.String()
}

// WithChain returns a new Qualified sharing Source with an independent chain.
func (q *Qualified) WithChain(chain []Selector) *Qualified {
	return &Qualified{Source: q.Source, Chain: chain}
}

// Resolve applies the chain left-to-right against Source, propagating the
// first error encountered.
func (q *Qualified) Resolve() (Value, error) {
	v := q.Source
	for _, sel := range q.Chain {
		next, err := sel.Apply(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}
