// Package funcid defines the identifier type used to name instrumentable
// functions. Identifiers are (namespace, name) pairs with a canonical
// "namespace/name" string form used in CLI arguments and log output.
package funcid
