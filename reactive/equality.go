package reactive

import "reflect"

// Identical reports whether a and b are the same value: == for comparable
// values, pointer identity for maps, slices, funcs and chans.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// Structural reports whether a and b are deeply equal.
func Structural(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
