// Package drift compares an installed version against the latest published
// one.
package drift
