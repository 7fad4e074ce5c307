// Package commands holds the builtin script commands and the catalog the
// dispatcher resolves them from.
//
// Builtins are declared in a static table. Each entry carries its arity,
// the access each argument needs, its declared parameter list and a
// strongly typed handler. BuildCatalog checks every entry's parameters
// against its arity and drops the ones that disagree.
package commands
