// Package schema defines the contract model and schema engine surface used
// for runtime validation of instrumented function calls.
//
// # Model
//
// A Schema pairs a cty.Type with optional named value checks addressed by
// cty.Path. Structural conformance is conversion-based, matching HCL's
// assignment semantics: a value conforms when it can be converted to the
// schema type. Checks cover properties the type system cannot express, such
// as a number being positive.
//
// # Reliability
//
// The Service's Explain and Humanize steps are explicitly allowed to fail:
// rendering an offending value can error on unknown values and cty operations
// panic on pathological inputs. SafeExplainHumanize is the only entry point
// the call-validation path may use; it converts every such failure into a
// fallback Diagnostic instead of letting it escape, so a broken reporting
// path can never mask the original validation failure.
package schema
