package process

import (
	"fmt"

	"github.com/helena-lang/helena/selector"
	"github.com/helena-lang/helena/value"
)

func selectIndex(src, idx value.Value) (value.Value, error) {
	i, ok := idx.(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("index selector requires an integer, got %s", idx.Kind())
	}
	sel := &selector.Indexed{Index: int(i.Value)}
	return sel.Apply(src)
}

func selectKeys(src value.Value, keys []string) (value.Value, error) {
	sel := &selector.Keyed{KeyList: keys}
	return sel.Apply(src)
}

func selectRules(src value.Value, rules []value.Value) (value.Value, error) {
	parsed := make([]selector.Rule, len(rules))
	for i, r := range rules {
		tup, ok := r.(*value.Tuple)
		if !ok || len(tup.Elements) == 0 {
			return nil, fmt.Errorf("generic selector rule must be a non-empty tuple")
		}
		parsed[i] = selector.Rule{Name: tup.Elements[0].Display(), Args: tup.Elements[1:]}
	}
	sel := &selector.Generic{Rules: parsed}
	return sel.Apply(src)
}
