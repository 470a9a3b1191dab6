package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/homeauctiondeals/gateway/internal/service"
	"github.com/homeauctiondeals/gateway/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

const codeListingProvider = "LISTING_PROVIDER_ERROR"

type PropertySearcher interface {
	Search(ctx context.Context, in service.PropertySearch) (*service.PropertySearchResult, error)
}

type PropertyHandler struct {
	Handler
	properties PropertySearcher
}

func NewPropertyHandler(s *server.Server, properties PropertySearcher) *PropertyHandler {
	return &PropertyHandler{
		Handler:    NewHandler(s),
		properties: properties,
	}
}

// PropertySearch serves GET /property-search. On success the listing
// provider's JSON is returned as-is; when no bounding box exists the
// response is a {status, data} message instead.
func (h *PropertyHandler) PropertySearch(c echo.Context, req *model.PropertySearchRequest) (any, error) {
	result, err := h.properties.Search(c.Request().Context(), service.PropertySearch{
		Query:   req.Query(),
		Page:    req.Page(),
		Filters: c.QueryParams(),
	})
	if err != nil {
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			return nil, errs.NewInternalServerError().
				WithCode(codeListingProvider).
				WithCause(err).
				WithBody(model.StatusResponse{Status: model.StatusError, Data: model.MsgListingProviderError})
		}

		return nil, sqlerr.HandleError(err).
			WithBody(model.StatusResponse{Status: model.StatusError, Data: http.StatusText(http.StatusInternalServerError)})
	}

	if result.Box == nil {
		return model.StatusResponse{Status: model.StatusSuccess, Data: model.MsgNoBoundingBox}, nil
	}
	return result.Listings, nil
}
