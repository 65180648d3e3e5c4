// Package strutil provides the built-in string function module.
package strutil

import (
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fnguard/internal/contract"
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/internal/funcid"
	"github.com/vk/fnguard/internal/schema"
)

// Module implements the env.Module interface for this package.
type Module struct{}

// Repeat concatenates count copies of s.
func Repeat(s string, count int) string {
	return strings.Repeat(s, count)
}

// Join concatenates parts with sep between them.
func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// Register registers the module's contracts and implementations.
func (m *Module) Register(e *env.Env) {
	e.DefineContracted(funcid.New("strutil", "repeat"), contract.New(
		[]contract.Param{
			{Name: "s", Type: cty.String, Check: schema.NonEmpty},
			{Name: "count", Type: cty.Number, Check: schema.Positive},
		},
		contract.Return{Type: cty.String, Check: schema.NonEmpty},
	), Repeat)

	e.DefineContracted(funcid.New("strutil", "join"), contract.New(
		[]contract.Param{
			{Name: "parts", Type: cty.List(cty.String), Check: schema.NonEmpty},
			{Name: "sep", Type: cty.String},
		},
		contract.Return{Type: cty.String},
	), Join)
}
