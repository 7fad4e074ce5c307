// Package session drives a compiled script over extracted packages.
//
// A Session owns one compiled Document, the command catalog and the merged
// configuration. For each package it reads the manifest, derives the rename
// variables and rule, then dispatches every stage present in the document
// in the fixed stage order. Several packages can be processed at once; each
// gets its own Dispatcher.
package session
