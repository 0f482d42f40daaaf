package kernel

import "reflect"

// DataObject is the single external contract the kernel relies on
// (spec §6): any operand exposes its preferred-first representation
// list. Concrete data-object implementations are out of scope for the
// kernel (spec §1); see pkg/collaborators for examples.
type DataObject interface {
	Representations() []string
}

// ExtractSignatures produces the operand representation set used
// during lookup (spec §4.4). A single DataObject's own representation
// list is returned unchanged; a slice of DataObjects returns the first
// element's representation list with every token list-suffixed.
func ExtractSignatures(arg any) ([]string, error) {
	if do, ok := arg.(DataObject); ok {
		return append([]string(nil), do.Representations()...), nil
	}

	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return nil, nil
		}
		first, ok := v.Index(0).Interface().(DataObject)
		if !ok {
			return nil, newShapeError(arg)
		}
		reps := first.Representations()
		out := make([]string, len(reps))
		for i, r := range reps {
			out[i] = r + "[]"
		}
		return out, nil
	default:
		return nil, newShapeError(arg)
	}
}

// CommonRepresentations returns, in order, the representations common
// to every given object: the intersection of their representation
// lists, preserving the order of the first object's list (spec §4.4).
func CommonRepresentations(objects ...DataObject) []string {
	if len(objects) == 0 {
		return nil
	}

	rest := objects[1:]
	var common []string
	for _, rep := range objects[0].Representations() {
		inAll := true
		for _, other := range rest {
			if !contains(other.Representations(), rep) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, rep)
		}
	}
	return common
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// shapeOf reports whether arg is a list of objects (true) or a single
// object (false), used to compute the actual signature shape of a call
// (spec §4.3 step 2). ok is false when arg is neither a DataObject nor
// a slice/array.
func shapeOf(arg any) (isList bool, ok bool) {
	if _, isObj := arg.(DataObject); isObj {
		return false, true
	}
	switch reflect.ValueOf(arg).Kind() {
	case reflect.Slice, reflect.Array:
		return true, true
	default:
		return false, false
	}
}
