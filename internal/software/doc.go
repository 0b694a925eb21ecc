// Package software defines a tracked software entry and the two primitives
// every version lookup is built on: locating the executable described by an
// entry, and extracting a version string from free-form text with a
// single-capture-group regular expression.
//
// An entry's executable is either Static (a literal command or path) or
// Dynamic (a directory plus a regex selecting one file inside it). The two
// variants are a closed set; callers switch on the concrete type.
package software
