package schema

import (
	"github.com/zclconf/go-cty/cty"
)

// Schema is the contract a value must satisfy. Structural conformance is
// defined by convertibility to Type; Checks add optional value-level
// refinements addressed by path into the converted value.
//
// An args contract uses a tuple Type over the ordered argument list, with
// checks addressed by argument index. A return contract uses the value's
// type directly with root-path checks.
type Schema struct {
	Type   cty.Type
	Checks []PathCheck
}

// PathCheck binds a value refinement to a location inside the validated value.
// An empty path addresses the whole value.
type PathCheck struct {
	Path  cty.Path
	Check *Check
}

// Check is a named predicate over a single value. Test must be total: it
// receives values that already conform structurally, but may still see null
// or unknown values and must return false for them rather than panic.
type Check struct {
	Name string
	Test func(cty.Value) bool
}

// New constructs a Schema from a type and optional path checks.
func New(ty cty.Type, checks ...PathCheck) *Schema {
	return &Schema{Type: ty, Checks: checks}
}

func knownNumber(v cty.Value) bool {
	return v.Type().Equals(cty.Number) && !v.IsNull() && v.IsKnown()
}

// Positive accepts known, non-null numbers strictly greater than zero.
var Positive = &Check{
	Name: "positive",
	Test: func(v cty.Value) bool {
		return knownNumber(v) && v.GreaterThan(cty.Zero).True()
	},
}

// NonZero accepts known, non-null numbers other than zero.
var NonZero = &Check{
	Name: "nonzero",
	Test: func(v cty.Value) bool {
		return knownNumber(v) && v.Equals(cty.Zero).False()
	},
}

// NonEmpty accepts known, non-null strings and collections with at least one
// element.
var NonEmpty = &Check{
	Name: "nonempty",
	Test: func(v cty.Value) bool {
		if v.IsNull() || !v.IsKnown() {
			return false
		}
		ty := v.Type()
		switch {
		case ty.Equals(cty.String):
			return v.AsString() != ""
		case ty.IsListType() || ty.IsSetType() || ty.IsMapType() || ty.IsTupleType():
			return v.LengthInt() > 0
		default:
			return false
		}
	},
}

var checksByName = map[string]*Check{
	Positive.Name: Positive,
	NonZero.Name:  NonZero,
	NonEmpty.Name: NonEmpty,
}

// CheckByName resolves a built-in check by its manifest name.
func CheckByName(name string) (*Check, bool) {
	c, ok := checksByName[name]
	return c, ok
}
