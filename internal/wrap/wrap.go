package wrap

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/binding"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

// InputValidator returns an implementation that validates the ordered
// argument tuple against args before delegating to fn. A nil args schema is a
// programming error and panics at build time.
func InputValidator(svc schema.Service, id funcid.ID, fn binding.Impl, args *schema.Schema) binding.Impl {
	if args == nil {
		panic(fmt.Sprintf("input validator for %q built without an args schema", id))
	}
	return func(ctx context.Context, argVals []cty.Value) (cty.Value, error) {
		tuple := cty.TupleVal(argVals)
		if !svc.Validate(args, tuple) {
			return cty.NilVal, &ValidationError{
				Func:       id,
				Stage:      StageInput,
				Diagnostic: schema.SafeExplainHumanize(svc, args, tuple),
				Offending:  tuple,
			}
		}
		return fn(ctx, argVals)
	}
}

// OutputValidator returns an implementation that delegates to fn and
// validates its result against ret before the caller sees it. A nil ret
// schema is a programming error and panics at build time.
func OutputValidator(svc schema.Service, id funcid.ID, fn binding.Impl, ret *schema.Schema) binding.Impl {
	if ret == nil {
		panic(fmt.Sprintf("output validator for %q built without a ret schema", id))
	}
	return func(ctx context.Context, argVals []cty.Value) (cty.Value, error) {
		result, err := fn(ctx, argVals)
		if err != nil {
			return result, err
		}
		if !svc.Validate(ret, result) {
			return cty.NilVal, &ValidationError{
				Func:       id,
				Stage:      StageOutput,
				Diagnostic: schema.SafeExplainHumanize(svc, ret, result),
				Offending:  result,
			}
		}
		return result, nil
	}
}

// Instrumented composes the input validator around the output validator
// around fn: arguments are checked before fn ever runs, the result is checked
// after fn runs and before the caller sees it. The composition is purely
// functional; fn itself is untouched.
func Instrumented(svc schema.Service, id funcid.ID, fn binding.Impl, args, ret *schema.Schema) binding.Impl {
	return InputValidator(svc, id, OutputValidator(svc, id, fn, ret), args)
}
