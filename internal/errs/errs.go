// Package errs defines the error envelope returned to API clients.
//
// Every failure that reaches the HTTP layer is expressed as an *HTTPError so
// clients always receive the same JSON shape: a machine code, a human
// message, and the HTTP status, plus optional field-level details.
package errs
