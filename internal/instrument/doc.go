// Package instrument rebinds registered functions so every call is validated
// against its declared contract, and restores the unvalidated originals on
// demand.
//
// The Controller owns the state machine: instrumenting resolves the contract
// and the live binding, captures the pre-instrumentation implementation in
// the original-implementation store (first capture wins, which is what makes
// re-instrumenting idempotent), and swaps the binding for a validating
// wrapper. Unstrumenting restores from the store and clears the entry. The
// bulk operations walk every registered identifier, collect per-function
// failures instead of aborting, and report them once as a BatchError.
package instrument
