package binding

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/funcid"
)

// Table is the in-memory binding resolver: it owns the Var cell for every
// defined function. Definitions happen at startup; resolution and calls are
// safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	vars    map[funcid.ID]*Var
	goTypes map[funcid.ID]reflect.Type
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		vars:    make(map[funcid.ID]*Var),
		goTypes: make(map[funcid.ID]reflect.Type),
	}
}

// Define creates the Var cell for id holding impl.
func (t *Table) Define(id funcid.ID, impl Impl) *Var {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.vars[id]; exists {
		panic(fmt.Sprintf("binding for %q already defined", id))
	}
	slog.Debug("Defining function binding.", "id", id.String())
	v := NewVar(impl)
	t.vars[id] = v
	return v
}

// DefineFunc lifts an ordinary Go function into the canonical Impl shape via
// FromFunc and defines it, retaining the Go signature for contract parity
// validation.
func (t *Table) DefineFunc(id funcid.ID, fn any) *Var {
	v := t.Define(id, FromFunc(fn))
	t.mu.Lock()
	t.goTypes[id] = reflect.TypeOf(fn)
	t.mu.Unlock()
	return v
}

// Resolve locates the Var cell for id.
func (t *Table) Resolve(id funcid.ID) (*Var, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vars[id]
	return v, ok
}

// GoType returns the Go function type recorded by DefineFunc, if any.
func (t *Table) GoType(id funcid.ID) (reflect.Type, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ty, ok := t.goTypes[id]
	return ty, ok
}

// Call resolves id and invokes its current implementation.
func (t *Table) Call(ctx context.Context, id funcid.ID, args ...cty.Value) (cty.Value, error) {
	v, ok := t.Resolve(id)
	if !ok {
		return cty.NilVal, fmt.Errorf("no binding defined for %q", id)
	}
	return v.Call(ctx, args...)
}
