// Package testkit holds helpers shared by package tests
package testkit

import "testing"

// Swap replaces *target for the rest of the test
// tests that swap package seams must not run in parallel
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// MustPanic fails the test unless fn panics, returning the recovered value
func MustPanic(t *testing.T, fn func()) (r any) {
	t.Helper()
	defer func() {
		if r = recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}
