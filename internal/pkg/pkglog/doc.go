// Package pkglog configures structured logging.
//
// Records are written as JSON with stable keys ("ts", "severity", "file") and
// carry the service name and, when the context has one, the request
// correlation id.
package pkglog
