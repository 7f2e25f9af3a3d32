package records

import "reflect"

// isNil reports whether rec is a nil pointer wrapped in the type parameter
func isNil[T any](rec T) bool {
	v := reflect.ValueOf(any(rec))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
