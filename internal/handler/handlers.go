package handler

import (
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/homeauctiondeals/gateway/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Location *LocationHandler
	Property *PropertyHandler
	Enquiry  *EnquiryHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Location: NewLocationHandler(s, services.Location),
		Property: NewPropertyHandler(s, services.Property),
		Enquiry:  NewEnquiryHandler(s, services.Enquiry),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
