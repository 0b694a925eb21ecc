// Package cache remembers the outcome of the last version check for each
// catalog entry, so list can show versions without resolving them again.
package cache
