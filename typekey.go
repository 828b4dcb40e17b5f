package di

import (
	"github.com/goccy/go-reflect"
	"unsafe"
)

// TypeKey identifies a type. Two keys are equal iff they denote the same
// type. Keys index every map in the container, so components are addressed
// by the interface they implement, not by their concrete type.
type TypeKey uintptr

// KeyOf returns the key of T. T may be an interface or a concrete type.
func KeyOf[T Interface]() TypeKey {
	return keyOf(typeOf[T]())
}

// String returns the denoted type in its usual Go notation.
func (k TypeKey) String() string {
	if k == 0 {
		return "<nil>"
	}

	return idType(uintptr(k)).String()
}

func keyOf(p reflect.Type) TypeKey {
	return TypeKey(typeId(p))
}

// keyOfValue keys by the dynamic type of v. Used for typed parameters.
func keyOfValue(v any) TypeKey {
	if v == nil {
		return 0
	}

	return keyOf(reflect.TypeOf(v))
}

func typeOf[T any]() reflect.Type { return typeIndirect(reflect.TypeOf(new(T))) }

func typeIndirect(p reflect.Type) reflect.Type {
	if p.Kind() == reflect.Ptr {
		return p.Elem()
	}

	return p
}

func typeId(p reflect.Type) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func idType(p uintptr) reflect.Type {
	return reflect.Type(unsafe.Pointer(p))
}
