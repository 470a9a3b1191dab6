package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/homeauctiondeals/gateway/internal/lib/propmix"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/rs/zerolog"
)

type BoundingBoxRepository interface {
	BoundingBox(ctx context.Context, q model.PropertyQuery) (*model.BoundingBox, error)
}

type ListingProvider interface {
	GetPropertiesInBoundingBox(ctx context.Context, p propmix.SearchParams) (json.RawMessage, error)
}

// UpstreamError marks a failure of the listing provider, as opposed to a
// database failure.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("listing provider: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PropertySearch is the input of PropertyService.Search.
type PropertySearch struct {
	Query   model.PropertyQuery
	Page    model.Page
	Filters url.Values
}

// PropertySearchResult carries the listings for the computed box. Box is nil
// when no box could be computed, and Listings is then empty.
type PropertySearchResult struct {
	Box      *model.BoundingBox
	Listings json.RawMessage
}

type PropertyService struct {
	repo     BoundingBoxRepository
	listings ListingProvider
}

func NewPropertyService(repo BoundingBoxRepository, listings ListingProvider) *PropertyService {
	return &PropertyService{repo: repo, listings: listings}
}

// Search computes the bounding box of the properties matching in.Query and
// fetches one page of auction listings inside it.
func (s *PropertyService) Search(ctx context.Context, in PropertySearch) (*PropertySearchResult, error) {
	box, err := s.repo.BoundingBox(ctx, in.Query)
	if err != nil {
		return nil, err
	}

	if box == nil {
		zerolog.Ctx(ctx).Info().
			Str("city", in.Query.City).
			Str("state", in.Query.State).
			Str("zip", in.Query.Zip).
			Msg("no bounding box for property search")
		return &PropertySearchResult{}, nil
	}

	listings, err := s.listings.GetPropertiesInBoundingBox(ctx, propmix.SearchParams{
		Box:     *box,
		Page:    in.Page,
		Filters: in.Filters,
	})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	return &PropertySearchResult{Box: box, Listings: listings}, nil
}
