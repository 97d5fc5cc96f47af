// Package middleware holds the global and route-level Echo middleware.
//
// These cover the cross-cutting concerns of every request: request IDs,
// request logging, CORS, rate limiting, tracing, and panic recovery. The
// global error handler that renders errs.HTTPError lives here too.
package middleware
