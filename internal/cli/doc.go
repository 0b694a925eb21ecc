// Package cli defines the Cobra command tree for the vercheck CLI. Each file
// registers one top-level command (add, edit, check, etc.). Commands delegate
// to internal packages for business logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
