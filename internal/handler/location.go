package handler

import (
	"context"
	"net/http"

	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/homeauctiondeals/gateway/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type LocationSearcher interface {
	Search(ctx context.Context, keyword string) ([]model.LocationSuggestion, error)
}

type LocationHandler struct {
	Handler
	locations LocationSearcher
}

func NewLocationHandler(s *server.Server, locations LocationSearcher) *LocationHandler {
	return &LocationHandler{
		Handler:   NewHandler(s),
		locations: locations,
	}
}

// DropdownSearch serves GET /dropdown-search. Errors are plain text.
func (h *LocationHandler) DropdownSearch(c echo.Context, req *model.DropdownSearchRequest) ([]model.LocationSuggestion, error) {
	suggestions, err := h.locations.Search(c.Request().Context(), req.Keyword)
	if err != nil {
		return nil, sqlerr.HandleError(err).WithBody(http.StatusText(http.StatusInternalServerError))
	}
	return suggestions, nil
}
