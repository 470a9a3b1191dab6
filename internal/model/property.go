package model

import (
	"strconv"
	"strings"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/validation"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// PropertyQuery selects the property rows a bounding box is computed over.
// Empty fields are not filtered on.
type PropertyQuery struct {
	City  string
	State string
	Zip   string
}

// IsEmpty reports whether no filter is set.
func (q PropertyQuery) IsEmpty() bool {
	return q.City == "" && q.State == "" && q.Zip == ""
}

// BoundingBox is the rectangle spanned by the min/max coordinates of the
// matching properties.
type BoundingBox struct {
	NELatitude  float64 `json:"NELatitude"`
	NELongitude float64 `json:"NELongitude"`
	SWLatitude  float64 `json:"SWLatitude"`
	SWLongitude float64 `json:"SWLongitude"`
}

// Page is the pagination forwarded to the listing provider.
type Page struct {
	Number int
	Size   int
}

// PropertySearchRequest is bound from GET /property-search. Any other
// query parameter is a candidate listing filter and is read separately.
//
// PageNumber and PageSize are bound as strings so an explicit 0 can be told
// apart from an absent value.
type PropertySearchRequest struct {
	City       string `query:"city"`
	State      string `query:"state"`
	Zip        string `query:"zip"`
	PageNumber string `query:"PageNumber"`
	PageSize   string `query:"PageSize"`

	page Page
}

func (r *PropertySearchRequest) Validate() error {
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Zip = strings.TrimSpace(r.Zip)

	if r.Query().IsEmpty() {
		return validation.CustomValidationErrors{{Field: "city", Message: MsgSearchParamRequired}}
	}

	var problems validation.CustomValidationErrors
	var ok bool

	if r.page.Number, ok = parsePageParam(r.PageNumber, DefaultPageNumber); !ok {
		problems = append(problems, validation.CustomValidationError{Field: "PageNumber", Message: "must be a positive integer"})
	}
	if r.page.Size, ok = parsePageParam(r.PageSize, DefaultPageSize); !ok {
		problems = append(problems, validation.CustomValidationError{Field: "PageSize", Message: "must be a positive integer"})
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

func parsePageParam(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Query returns the location filters of the request.
func (r *PropertySearchRequest) Query() PropertyQuery {
	return PropertyQuery{City: r.City, State: r.State, Zip: r.Zip}
}

// Page returns the requested page. It is only meaningful after Validate.
func (r *PropertySearchRequest) Page() Page {
	return r.page
}

// ErrorBody wraps validation failures in the {status, data} envelope.
func (r *PropertySearchRequest) ErrorBody(err *errs.HTTPError) any {
	data := err.Message
	if len(err.Errors) > 0 {
		fe := err.Errors[0]
		if fe.Error == MsgSearchParamRequired {
			data = fe.Error
		} else {
			data = fe.Field + " " + fe.Error
		}
	}
	return StatusResponse{Status: StatusError, Data: data}
}
