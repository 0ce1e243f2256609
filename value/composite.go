package value

import (
	"fmt"
	"strings"
)

// List is an ordered, indexable sequence of values.
type List struct {
	Elements []Value
}

// NewList wraps a slice of elements. The slice is owned by the returned List.
func NewList(elements []Value) *List { return &List{Elements: elements} }

func (l *List) Kind() Kind { return KindList }

func (l *List) Display() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range l.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.Display())
	}
	b.WriteByte(')')
	return b.String()
}

// SelectIndex returns the element at position i.
func (l *List) SelectIndex(i int) (Value, error) {
	if i < 0 || i >= len(l.Elements) {
		return nil, fmt.Errorf("index out of range %q", fmt.Sprint(i))
	}
	return l.Elements[i], nil
}

// Dictionary maps string keys to values. Key order carries no semantic
// weight: two dictionaries with the same key set and equal values compare
// equal regardless of insertion order (see Equal).
type Dictionary struct {
	// keys preserves insertion order for Display only.
	keys   []string
	values map[string]Value
}

// NewDictionary builds a Dictionary from parallel key/value slices, which
// must be the same length. Later duplicate keys overwrite earlier ones.
func NewDictionary(keys []string, values []Value) *Dictionary {
	d := &Dictionary{values: make(map[string]Value, len(keys))}
	for i, k := range keys {
		if _, exists := d.values[k]; !exists {
			d.keys = append(d.keys, k)
		}
		d.values[k] = values[i]
	}
	return d
}

// NewEmptyDictionary returns an empty Dictionary.
func NewEmptyDictionary() *Dictionary {
	return &Dictionary{values: make(map[string]Value)}
}

func (d *Dictionary) Kind() Kind { return KindDictionary }

func (d *Dictionary) Display() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %s", k, d.values[k].Display())
	}
	b.WriteByte(')')
	return b.String()
}

// SelectKey returns the value bound to key, or an error if absent.
func (d *Dictionary) SelectKey(key string) (Value, error) {
	v, ok := d.values[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", key)
	}
	return v, nil
}

// Keys returns the dictionary's keys in insertion order.
func (d *Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the value for key and whether it was present, without erroring.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Len reports the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Set binds key to v, preserving first-insertion order of keys.
func (d *Dictionary) Set(key string, v Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Tuple is a syntactic ordered sequence whose selectors propagate into each
// element: applying any selector to a Tuple yields a Tuple of the same
// arity holding the selector applied to each element.
type Tuple struct {
	Elements []Value
}

// NewTuple wraps a slice of elements.
func NewTuple(elements []Value) *Tuple { return &Tuple{Elements: elements} }

func (t *Tuple) Kind() Kind { return KindTuple }

func (t *Tuple) Display() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.Display())
	}
	b.WriteByte(')')
	return b.String()
}
