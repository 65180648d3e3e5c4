package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/fnguard/internal/ctxlog"
	"github.com/vk/fnguard/internal/env"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// validateEnv performs a strict parity check between declared contracts and
// the Go implementations bound for them. It checks argument arity and the
// compatibility of declared types with the Go signature.
//
// A contract without any binding is allowed (it may be satisfied later, or
// fail per-function during bulk instrumentation); a binding whose Go
// signature contradicts its contract is not.
func validateEnv(ctx context.Context, e *env.Env) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, id := range e.Contracts.IDs() {
		con, _ := e.Contracts.Lookup(id)

		if _, ok := e.Bindings.Resolve(id); !ok {
			logger.Warn("Contract has no bound implementation; instrumenting it will fail.", "id", id.String())
			continue
		}
		goType, ok := e.Bindings.GoType(id)
		if !ok {
			// Bound directly as a canonical impl; nothing to introspect.
			continue
		}

		numIn := goType.NumIn()
		argOffset := 0
		if numIn > 0 && goType.In(0) == ctxType {
			argOffset = 1
		}
		if numIn-argOffset != len(con.Params) {
			errs = append(errs, fmt.Sprintf("function %q: contract declares %d argument(s), but Go implementation takes %d",
				id, len(con.Params), numIn-argOffset))
			continue
		}

		for i, param := range con.Params {
			if param.Type.Equals(cty.DynamicPseudoType) {
				logger.Warn("Contract argument has 'type = any', which disables static type checking.", "id", id.String(), "arg", param.Name)
				continue
			}
			goParam := goType.In(i + argOffset)
			impliedType, err := gocty.ImpliedType(reflect.Zero(goParam).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("function %q, arg %q: could not imply cty type from Go type %s: %v",
					id, param.Name, goParam, err))
				continue
			}
			if !param.Type.Equals(impliedType) {
				errs = append(errs, fmt.Sprintf("function %q, arg %q: type mismatch. Contract requires '%s' but Go implementation provides '%s'",
					id, param.Name, param.Type.FriendlyName(), impliedType.FriendlyName()))
			}
		}

		if err := validateReturn(id.String(), con.Returns.Type, goType); err != "" {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("environment validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validateReturn(id string, declared cty.Type, goType reflect.Type) string {
	if declared.Equals(cty.DynamicPseudoType) {
		return ""
	}

	numOut := goType.NumOut()
	if numOut > 0 && goType.Out(numOut-1) == errType {
		numOut--
	}
	if numOut == 0 {
		return fmt.Sprintf("function %q: contract declares a %s return, but Go implementation returns nothing",
			id, declared.FriendlyName())
	}

	impliedType, err := gocty.ImpliedType(reflect.Zero(goType.Out(0)).Interface())
	if err != nil {
		return fmt.Sprintf("function %q: could not imply cty type from Go return type %s: %v", id, goType.Out(0), err)
	}
	if !declared.Equals(impliedType) {
		return fmt.Sprintf("function %q: return type mismatch. Contract requires '%s' but Go implementation provides '%s'",
			id, declared.FriendlyName(), impliedType.FriendlyName())
	}
	return ""
}
