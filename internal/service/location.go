package service

import (
	"context"

	"github.com/homeauctiondeals/gateway/internal/model"
)

type LocationRepository interface {
	SearchLocations(ctx context.Context, keyword string) ([]model.LocationSuggestion, error)
}

type LocationService struct {
	repo LocationRepository
}

func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Search returns the autocomplete suggestions for keyword. The result is
// never nil so it always encodes as a JSON array.
func (s *LocationService) Search(ctx context.Context, keyword string) ([]model.LocationSuggestion, error) {
	suggestions, err := s.repo.SearchLocations(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []model.LocationSuggestion{}
	}
	return suggestions, nil
}
