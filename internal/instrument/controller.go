package instrument

import (
	"context"
	"fmt"

	"github.com/vk/fnguard/internal/binding"
	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/ctxlog"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/origstore"
	"github.com/vk/fnguard/internal/schema"
	"github.com/vk/fnguard/internal/wrap"
)

// SchemaSource is the contract-registry surface the controller consumes.
type SchemaSource interface {
	Lookup(id funcid.ID) (*contract.Contract, bool)
	IDs() []funcid.ID
}

// Resolver locates the live binding for an identifier.
type Resolver interface {
	Resolve(id funcid.ID) (*binding.Var, bool)
}

// Controller drives the per-function instrument/unstrument state machine.
// Each identifier is either Bare (binding holds the original, store empty) or
// Instrumented (binding holds a validating wrapper, store holds the
// original); both operations are safe to over-apply.
type Controller struct {
	schemas  SchemaSource
	resolver Resolver
	store    *origstore.Store
	svc      schema.Service
}

// New creates a Controller over the given collaborators.
func New(schemas SchemaSource, resolver Resolver, store *origstore.Store, svc schema.Service) *Controller {
	return &Controller{
		schemas:  schemas,
		resolver: resolver,
		store:    store,
		svc:      svc,
	}
}

// InstrumentOne swaps the live binding of id for a wrapper validating input
// and output against the registered contract. Calling it repeatedly is
// idempotent: the binding always ends up wrapping the true original exactly
// once, because the original is recovered from the store rather than from the
// (possibly already wrapped) binding.
func (c *Controller) InstrumentOne(ctx context.Context, id funcid.ID) error {
	con, ok := c.schemas.Lookup(id)
	if !ok {
		return &SchemaNotFoundError{ID: id}
	}
	v, ok := c.resolver.Resolve(id)
	if !ok {
		return &VarNotFoundError{ID: id}
	}

	original := c.store.GetOr(id, v.Get())
	c.store.CaptureIfAbsent(id, original)
	v.Set(wrap.Instrumented(c.svc, id, original, con.ArgsSchema(), con.RetSchema()))

	ctxlog.FromContext(ctx).Debug("Function instrumented.", "id", id.String())
	return nil
}

// UnstrumentOne restores the pre-instrumentation implementation of id and
// clears its store entry. On a never-instrumented identifier the store falls
// back to the current live value, making this a safe restore-to-self no-op.
func (c *Controller) UnstrumentOne(ctx context.Context, id funcid.ID) error {
	v, ok := c.resolver.Resolve(id)
	if !ok {
		return &VarNotFoundError{ID: id}
	}

	original := c.store.GetOr(id, v.Get())
	c.store.Clear(id)
	v.Set(original)

	ctxlog.FromContext(ctx).Debug("Function restored.", "id", id.String())
	return nil
}

// InstrumentAll instruments every identifier known to the contract registry.
// One broken registration must not prevent instrumenting the rest: failures
// are collected across the full pass and reported once as a BatchError.
func (c *Controller) InstrumentAll(ctx context.Context) error {
	return c.forAll(ctx, "instrument", c.InstrumentOne)
}

// UnstrumentAll restores every identifier known to the contract registry,
// with the same collect-don't-abort policy as InstrumentAll.
func (c *Controller) UnstrumentAll(ctx context.Context) error {
	return c.forAll(ctx, "unstrument", c.UnstrumentOne)
}

func (c *Controller) forAll(ctx context.Context, verb string, op func(context.Context, funcid.ID) error) error {
	logger := ctxlog.FromContext(ctx)

	ids := c.schemas.IDs()
	var failures []error
	for _, id := range ids {
		if err := c.attempt(ctx, op, id); err != nil {
			logger.Warn("Bulk operation failed for one function, continuing.",
				"op", verb, "id", id.String(), "error", err)
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return &BatchError{Failures: failures}
	}
	logger.Info("Bulk operation finished.", "op", verb, "functions", len(ids))
	return nil
}

// attempt isolates one per-function operation so a panicking registration
// cannot take down the rest of the batch.
func (c *Controller) attempt(ctx context.Context, op func(context.Context, funcid.ID) error, id funcid.ID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation for %q panicked: %v", id, r)
		}
	}()
	return op(ctx, id)
}

// Instrumented reports whether id currently holds a wrapper, by the store's
// presence signal.
func (c *Controller) Instrumented(id funcid.ID) bool {
	return c.store.Contains(id)
}
