// Package validation binds and validates request data.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and converts failures into 400 errors the client can understand.
package validation
