// Package contract provides the central registry mapping function
// identifiers to their declared input/output contracts.
//
// The Registry is populated during application startup, either
// programmatically by built-in function modules or from HCL manifest files
// declaring a contract per function:
//
//	contract "mathx" "add" {
//	  description = "Sum two numbers."
//	  arg "a" { type = number }
//	  arg "b" { type = number }
//	  returns { type = number }
//	}
//
// Manifest type expressions support the primitives string, number, bool and
// any, the list/map/set constructors, and object({...}). An arg or returns
// block may name a built-in value check (`check = "positive"`) for
// properties the type system cannot express.
//
// After population the registry is read-only in practice: the
// instrumentation controller looks contracts up per identifier and
// enumerates identifiers for bulk operations.
package contract
