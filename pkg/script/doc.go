// Package script compiles rename scripts into stage-ordered documents.
//
// A script is line oriented:
//
//	version = 1.0
//	section Directory
//	mv "smali/com/%originalCompany%" smali/com/%newCompany%
//	section Library
//	include lib/arm64-v8a
//
// Meta-setters (key = value) may appear anywhere. Command lines belong to
// the most recent section header. Comments start with ';' or '#' and run to
// the end of the line. Headers may also be written as @StageName.
//
// Compile scans the whole document and reports every lexing or parsing
// diagnostic before failing, so an author sees all syntax problems at once.
package script
