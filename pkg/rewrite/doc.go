// Package rewrite patches rename targets inside compiled artifacts.
//
// Two engines are provided. RewriteELFStrings edits string tables of native
// libraries in place, keeping every string at its original byte length so
// offsets into the table stay valid. RewriteArchiveStrings replaces text in
// selected entries of zip-based asset archives (OBB files).
//
// Both engines treat inputs of the wrong format as a warning and leave them
// untouched. Both stop early, without error, when their context is done.
package rewrite
