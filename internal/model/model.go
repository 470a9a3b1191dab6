// Package model holds the request, response and domain types shared by
// the handler, service and repository layers.
package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()
