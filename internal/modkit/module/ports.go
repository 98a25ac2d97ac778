// Package module pulls typed ports out of built modules during composition
package module

import (
	"reflect"

	modkit "truthlens/internal/modkit"
)

// PortsOf finds a T in m.Ports(), either the bundle itself or one of its exported fields
func PortsOf[T any](m modkit.Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for composition roots, where a missing port is a wiring bug
func MustPortsOf[T any](m modkit.Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}
