package repository

import (
	"github.com/homeauctiondeals/gateway/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Property *PropertyRepository
}

// NewRepositories builds every repository on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Property: NewPropertyRepository(s.DB.Pool),
	}
}
