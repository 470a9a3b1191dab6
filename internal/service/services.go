package service

import (
	"github.com/homeauctiondeals/gateway/internal/repository"
	"github.com/homeauctiondeals/gateway/internal/server"
)

type Services struct {
	Location *LocationService
	Property *PropertyService
	Enquiry  *EnquiryService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *job.JobService must not become a non-nil Notifier.
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Location: NewLocationService(repos.Property),
		Property: NewPropertyService(repos.Property, s.PropMix),
		Enquiry:  NewEnquiryService(s.Sheets, notifier),
	}, nil
}
