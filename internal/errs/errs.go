// Package errs defines the error types the HTTP layer returns.
//
// Every handler failure is an *HTTPError. The global error handler logs
// its cause and writes either the standard JSON shape or, when the route
// has a fixed wire contract, the route-specific body attached to it.
package errs
