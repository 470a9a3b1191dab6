// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services call the repositories and external clients
// and return domain results or errors.
package service
