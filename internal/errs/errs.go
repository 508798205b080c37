// Package errs defines the application error types shared by every layer.
//
// Repositories return *HTTPError values so that an outer transport can map
// them to a status code without knowing where they came from:
//
//	not found    -> 404
//	bad request  -> 400
//	unauthorized -> 401
//
// Anything else is treated as an internal error.
package errs
