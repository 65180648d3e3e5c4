// Package env ties the contract registry and the binding table together into
// the host environment that function modules register into. It is the
// "register before use" surface: modules declare a contract and define the
// matching implementation in one call, and the instrumentation controller
// later operates on the pair.
package env

import (
	"github.com/vk/fnguard/internal/binding"
	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/funcid"
)

// Env holds the registered contracts and live bindings for a single
// application instance.
type Env struct {
	Contracts *contract.Registry
	Bindings  *binding.Table
}

// New creates an empty environment.
func New() *Env {
	return &Env{
		Contracts: contract.NewRegistry(),
		Bindings:  binding.NewTable(),
	}
}

// DefineContracted registers the contract for id and defines its
// implementation from an ordinary Go function in one step.
func (e *Env) DefineContracted(id funcid.ID, c *contract.Contract, fn any) {
	e.Contracts.Register(id, c)
	e.Bindings.DefineFunc(id, fn)
}

// Module is the interface all built-in function modules implement to be
// registered into an environment.
type Module interface {
	Register(e *Env)
}
