// Package binding owns the live bindings of instrumentable functions. Each
// function is reachable only through its Var, a mutable indirection cell
// dereferenced at call time; instrumentation swaps the cell's contents and
// never touches call sites. The Table maps function identifiers to their
// cells and backs the resolver interface the instrumentation controller
// consumes.
package binding
