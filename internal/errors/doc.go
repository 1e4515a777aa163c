// Package errors defines the service-wide error codes and a typed error
// that carries a code, an optional cause and free-form metadata. Codes
// register default severity and retry semantics used by logging.
package errors
