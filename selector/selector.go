// Package selector implements the three selector kinds described in
// spec.md §4.2: Indexed, Keyed and Generic. Each applies to a value.Value
// and yields a sub-value, with two cross-cutting rules handled once, here,
// for all three kinds:
//
//   - applied to a Tuple, a selector propagates elementwise, producing a
//     Tuple of the same arity (or the first element-wise error);
//   - applied to a Qualified value, a selector is appended to its chain
//     instead of being evaluated immediately.
package selector

import (
	"fmt"

	"github.com/helena-lang/helena/value"
)

// apply is the shared entry point every concrete selector's Apply calls,
// factoring out the Tuple-propagation and Qualified-chaining rules so each
// selector kind only needs to supply its own "direct" case.
func apply(sel value.Selector, v value.Value, direct func(value.Value) (value.Value, error)) (value.Value, error) {
	switch vv := v.(type) {
	case *value.Qualified:
		return Append(vv, sel), nil
	case *value.Tuple:
		out := make([]value.Value, len(vv.Elements))
		for i, e := range vv.Elements {
			r, err := apply(sel, e, direct)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return value.NewTuple(out), nil
	default:
		return direct(v)
	}
}

// Append appends sel to q's selector chain, folding it into the previous
// selector when both are Keyed (so a chain never holds two adjacent Keyed
// selectors — spec.md §3 invariant "Qualified values fold successive keyed
// selectors into one keyed selector with concatenated key list").
func Append(q *value.Qualified, sel value.Selector) *value.Qualified {
	if len(q.Chain) > 0 {
		if prevKeyed, ok := q.Chain[len(q.Chain)-1].(value.KeyedSelector); ok {
			if nextKeyed, ok := sel.(value.KeyedSelector); ok {
				merged := append(append([]string{}, prevKeyed.Keys()...), nextKeyed.Keys()...)
				chain := make([]value.Selector, len(q.Chain)-1, len(q.Chain)+1)
				copy(chain, q.Chain[:len(q.Chain)-1])
				chain = append(chain, &Keyed{KeyList: merged})
				return q.WithChain(chain)
			}
		}
	}
	chain := make([]value.Selector, len(q.Chain), len(q.Chain)+1)
	copy(chain, q.Chain)
	chain = append(chain, sel)
	return q.WithChain(chain)
}

// Indexed selects the element of an Indexable value at a fixed position.
type Indexed struct {
	Index int
}

// Apply implements value.Selector.
func (s *Indexed) Apply(v value.Value) (value.Value, error) {
	return apply(s, v, func(v value.Value) (value.Value, error) {
		idx, ok := v.(value.Indexable)
		if !ok {
			return nil, fmt.Errorf("value of kind %s does not support indexed selection", v.Kind())
		}
		return idx.SelectIndex(s.Index)
	})
}

// Keyed selects nested values by an ordered list of string keys, applying
// SelectKey once per key — `a(k1 k2)` is equivalent to `a(k1)(k2)`.
type Keyed struct {
	KeyList []string
}

// Keys implements value.KeyedSelector.
func (s *Keyed) Keys() []string { return s.KeyList }

// Apply implements value.Selector.
func (s *Keyed) Apply(v value.Value) (value.Value, error) {
	return apply(s, v, func(v value.Value) (value.Value, error) {
		cur := v
		for _, k := range s.KeyList {
			keyable, ok := cur.(value.Keyable)
			if !ok {
				return nil, fmt.Errorf("value of kind %s does not support keyed selection", cur.Kind())
			}
			next, err := keyable.SelectKey(k)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	})
}

// Rule is one step of a Generic selector's rule program — a named
// operation with value arguments, e.g. a guard predicate or a custom
// traversal instruction understood only by the target value's Select.
type Rule struct {
	Name string
	Args []value.Value
}

// Generic selects via a value-defined rule interpreter (value.Selectable),
// or falls back to an error if the value offers no such interpreter.
// Tuple and Qualified values are special-cased by the shared apply step
// before this is reached; no value kind in the value package implements
// Selectable.
type Generic struct {
	Rules []Rule
}

// Apply implements value.Selector.
func (s *Generic) Apply(v value.Value) (value.Value, error) {
	return apply(s, v, func(v value.Value) (value.Value, error) {
		sel, ok := v.(value.Selectable)
		if !ok {
			return nil, fmt.Errorf("value of kind %s does not support generic selection", v.Kind())
		}
		return sel.Select(s)
	})
}
