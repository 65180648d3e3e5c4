// Package mathx provides the built-in numeric function module.
package mathx

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

// Module implements the env.Module interface for this package.
type Module struct{}

// Add sums two numbers.
func Add(a, b float64) float64 {
	return a + b
}

// Abs returns the absolute value of n.
func Abs(n float64) float64 {
	if n < 0 {
		return -n
	}
	return n
}

// Clamp bounds value into the closed interval [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Register registers the module's contracts and implementations.
func (m *Module) Register(e *env.Env) {
	e.DefineContracted(funcid.New("mathx", "add"), contract.New(
		[]contract.Param{
			{Name: "a", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		contract.Return{Type: cty.Number},
	), Add)

	e.DefineContracted(funcid.New("mathx", "abs"), contract.New(
		[]contract.Param{
			{Name: "n", Type: cty.Number, Check: schema.NonZero},
		},
		contract.Return{Type: cty.Number, Check: schema.Positive},
	), Abs)

	e.DefineContracted(funcid.New("mathx", "clamp"), contract.New(
		[]contract.Param{
			{Name: "value", Type: cty.Number},
			{Name: "lo", Type: cty.Number},
			{Name: "hi", Type: cty.Number},
		},
		contract.Return{Type: cty.Number},
	), Clamp)
}
