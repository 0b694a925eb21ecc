// Package session drives the add/edit conversation for one catalog entry.
//
// A Session is an explicit state machine: the installed version is resolved
// and confirmed first, then the latest version. A failing step can be
// reconfigured and retried without losing what was already confirmed.
// Nothing here touches the catalog; callers persist the Result once the
// session is Committed.
package session
