// Package handler implements the HTTP surface.
//
// GET and HEAD on / return the plain-text greeting carrying the
// configured env label. Other paths get 404 and other methods on / get
// 405. Every request is written to the access log.
package handler
