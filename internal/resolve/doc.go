// Package resolve turns a software entry into version strings.
//
// Installed runs the entry's executable through a shell and scrapes the
// combined output with the installed regex. Latest fetches the entry's URL and
// scrapes the body with the latest regex. Neither resolver retries or caches;
// retrying is driven by the user through the session package.
package resolve
