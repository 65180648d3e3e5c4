package binding

import (
	"context"
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// Impl is the canonical shape of a registered function implementation.
// Arguments and result travel as cty values so contracts can be checked
// against them uniformly. An Impl must return a valid (possibly null) value
// on success; the value is meaningless when the error is non-nil.
type Impl func(ctx context.Context, args []cty.Value) (cty.Value, error)

// Var is the live binding for one function: a mutable indirection cell that
// callers dereference at call time. Only the instrumentation layer swaps its
// contents; everything else goes through Call.
type Var struct {
	mu   sync.RWMutex
	impl Impl
}

// NewVar creates a cell holding impl.
func NewVar(impl Impl) *Var {
	return &Var{impl: impl}
}

// Get returns the implementation currently held by the cell.
func (v *Var) Get() Impl {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.impl
}

// Set replaces the implementation held by the cell.
func (v *Var) Set(impl Impl) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.impl = impl
}

// Call dereferences the cell and invokes whatever it currently holds.
func (v *Var) Call(ctx context.Context, args ...cty.Value) (cty.Value, error) {
	return v.Get()(ctx, args)
}
