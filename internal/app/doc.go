// Package app provides application wiring and HTTP server lifecycle.
//
// The App type binds the configured listener, mounts the handler routes
// and serves them with the standard concurrent net/http server until
// the serving loop fails or its context is cancelled.
package app
