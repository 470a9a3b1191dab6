// Package handler is the HTTP layer, the first stop after the router.
//
// Handlers bind and validate requests through the validation package,
// call the service layer and turn failures into *errs.HTTPError values
// carrying each route's wire format.
package handler
