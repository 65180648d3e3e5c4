package binding

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// FromFunc adapts an ordinary Go function to the canonical Impl shape.
//
// The function may optionally take a leading context.Context and optionally
// return a trailing error; at most one non-error result is allowed. Incoming
// cty arguments are converted to the declared parameter types and the result
// is lifted back to a cty value. Unsupported shapes (non-functions, variadic
// functions, multiple data results) are programming errors and panic at
// definition time.
func FromFunc(fn any) Impl {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("FromFunc requires a function, got %T", fn))
	}
	if ft.IsVariadic() {
		panic("FromFunc does not support variadic functions")
	}

	takesCtx := ft.NumIn() > 0 && ft.In(0) == ctxType
	argOffset := 0
	if takesCtx {
		argOffset = 1
	}

	numOut := ft.NumOut()
	returnsErr := numOut > 0 && ft.Out(numOut-1) == errType
	numData := numOut
	if returnsErr {
		numData--
	}
	if numData > 1 {
		panic(fmt.Sprintf("FromFunc supports at most one non-error result, got %d", numData))
	}

	wantArgs := ft.NumIn() - argOffset

	return func(ctx context.Context, args []cty.Value) (cty.Value, error) {
		if len(args) != wantArgs {
			return cty.NilVal, fmt.Errorf("wrong number of arguments: want %d, got %d", wantArgs, len(args))
		}

		callArgs := make([]reflect.Value, 0, ft.NumIn())
		if takesCtx {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
		}
		for i, arg := range args {
			pv := reflect.New(ft.In(i + argOffset))
			if err := gocty.FromCtyValue(arg, pv.Interface()); err != nil {
				return cty.NilVal, fmt.Errorf("argument %d: %w", i, err)
			}
			callArgs = append(callArgs, pv.Elem())
		}

		results := fv.Call(callArgs)

		if returnsErr {
			last := results[len(results)-1]
			if !last.IsNil() {
				return cty.NilVal, last.Interface().(error)
			}
		}
		if numData == 0 {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}

		out := results[0].Interface()
		outType, err := gocty.ImpliedType(out)
		if err != nil {
			return cty.NilVal, fmt.Errorf("cannot imply cty type for result %T: %w", out, err)
		}
		return gocty.ToCtyValue(out, outType)
	}
}
