// Package userdata resolves where vercheck keeps its files: the catalog and
// the check results cache, both under ~/.vercheck/ by default.
package userdata
