// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package defines the
// settings it is built from (port, API key, body and read limits) and the
// checks applied to them before the listener starts.
package server
