package value

// Equal reports whether a and b are equal under Helena's value semantics.
// Dictionaries compare equal when they hold the same key set with equal
// values regardless of insertion order (spec.md §8 property 8). Scripts
// and Commands compare by reference identity: they are opaque handles,
// not structural data.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Integer:
		switch bv := b.(type) {
		case *Integer:
			return av.Value == bv.Value
		case *Real:
			return float64(av.Value) == bv.Value
		}
		return false
	case *Real:
		switch bv := b.(type) {
		case *Real:
			return av.Value == bv.Value
		case *Integer:
			return av.Value == float64(bv.Value)
		}
		return false
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		bv, ok := b.(*Dictionary)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			otherVal, present := bv.Get(k)
			if !present || !Equal(av.values[k], otherVal) {
				return false
			}
		}
		return true
	case *Script:
		bv, ok := b.(*Script)
		return ok && av == bv
	case *Command:
		bv, ok := b.(*Command)
		return ok && av == bv
	case *Qualified:
		bv, ok := b.(*Qualified)
		return ok && av == bv
	default:
		return false
	}
}
