// Package repokit binds sql repos to the store seams without importing a driver
package repokit

import (
	"truthlens/internal/platform/store"
)

type (
	// Queryer is the read and write surface sql repos run against
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner
)

// Binder builds a domain repo over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q, panicking on a nil seam since that is a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
