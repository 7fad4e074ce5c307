// Package dispatch executes one compiled stage against an extracted package.
//
// A Dispatcher resolves each command in the catalog, substitutes %NAME%
// variables, checks the argument count, confines every argument to the
// package directory and then invokes the handler. Commands run strictly in
// order; the first failure aborts the rest of the stage and nothing that
// already happened is rolled back.
//
// CheckPrivileges must be called before constructing a Dispatcher. Running
// script-driven file operations with administrator rights is refused.
package dispatch
