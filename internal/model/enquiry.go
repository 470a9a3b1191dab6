package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/homeauctiondeals/gateway/internal/errs"
)

// Enquiry is a lead captured from the contact form.
type Enquiry struct {
	FullName     string
	Phone        string
	Email        string
	Description  string
	Notification bool
}

// Row returns the spreadsheet row for the enquiry. The column order is
// fixed: fullName, phone, email, description, notification.
func (e Enquiry) Row() []any {
	return []any{e.FullName, e.Phone, e.Email, e.Description, e.Notification}
}

// EnquiryRequest is the JSON body of POST /enquiry.
type EnquiryRequest struct {
	FullName     string   `json:"fullName" validate:"required"`
	Phone        string   `json:"phone" validate:"required"`
	Email        string   `json:"email" validate:"required"`
	Description  string   `json:"description"`
	Notification FlexBool `json:"notification"`
}

// FlexBool decodes the checkbox values web forms send: JSON booleans,
// numbers (non-zero is true) and strings such as "true", "1", "on" or "".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch v := v.(type) {
	case bool:
		*b = FlexBool(v)
	case float64:
		*b = v != 0
	case string:
		parsed, err := parseFlexBool(v)
		if err != nil {
			return err
		}
		*b = FlexBool(parsed)
	default:
		return fmt.Errorf("notification must be a boolean, got %s", data)
	}
	return nil
}

func parseFlexBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "no":
		return false, nil
	case "on", "yes":
		return true, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("notification must be a boolean, got %q", s)
	}
	return v, nil
}

func (r *EnquiryRequest) Validate() error {
	return validate.Struct(r)
}

// Enquiry converts the request into the domain type.
func (r *EnquiryRequest) Enquiry() Enquiry {
	return Enquiry{
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
		Description:  r.Description,
		Notification: bool(r.Notification),
	}
}

// ErrorBody keeps the {message} error contract of the enquiry route.
func (r *EnquiryRequest) ErrorBody(err *errs.HTTPError) any {
	if len(err.Errors) > 0 {
		return MessageResponse{Message: MsgMissingMandatory}
	}
	return MessageResponse{Message: err.Message}
}
