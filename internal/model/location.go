package model

import (
	"github.com/homeauctiondeals/gateway/internal/errs"
)

// LocationSuggestion is one autocomplete row: a city with a representative
// state and zip and the number of matching properties.
type LocationSuggestion struct {
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
	Count int64  `json:"count"`
}

// DropdownSearchRequest is bound from GET /dropdown-search.
type DropdownSearchRequest struct {
	Keyword string `query:"keyword" validate:"required"`
}

func (r *DropdownSearchRequest) Validate() error {
	return validate.Struct(r)
}

// ErrorBody keeps the plain-text error contract of the autocomplete route.
func (r *DropdownSearchRequest) ErrorBody(_ *errs.HTTPError) any {
	return MsgKeywordRequired
}
