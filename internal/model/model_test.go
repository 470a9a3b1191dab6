package model

import (
	"encoding/json"
	"testing"

	"github.com/homeauctiondeals/gateway/internal/errs"
)

func TestPropertySearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      PropertySearchRequest
		wantErr  bool
		wantPage Page
		wantZip  string
	}{
		{name: "defaults", req: PropertySearchRequest{City: "Austin"}, wantPage: Page{Number: 1, Size: 10}},
		{name: "explicit page", req: PropertySearchRequest{State: "TX", PageNumber: "3", PageSize: "50"}, wantPage: Page{Number: 3, Size: 50}},
		{name: "trims filters", req: PropertySearchRequest{Zip: " 78701 "}, wantPage: Page{Number: 1, Size: 10}, wantZip: "78701"},
		{name: "no filters", req: PropertySearchRequest{}, wantErr: true},
		{name: "blank filters", req: PropertySearchRequest{City: "  ", State: "\t"}, wantErr: true},
		{name: "zero page size", req: PropertySearchRequest{City: "Austin", PageSize: "0"}, wantErr: true},
		{name: "negative page", req: PropertySearchRequest{City: "Austin", PageNumber: "-1"}, wantErr: true},
		{name: "non-numeric page", req: PropertySearchRequest{City: "Austin", PageNumber: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if req.Page() != tt.wantPage {
				t.Errorf("Page() = %+v, want %+v", req.Page(), tt.wantPage)
			}
			if tt.wantZip != "" && req.Zip != tt.wantZip {
				t.Errorf("Zip = %q, want %q", req.Zip, tt.wantZip)
			}
		})
	}
}

func TestErrorBodies(t *testing.T) {
	fieldErr := errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "phone", Error: "is required"}})
	bindErr := errs.NewBadRequestError("unexpected EOF", false, nil, nil)

	if got := (&DropdownSearchRequest{}).ErrorBody(fieldErr); got != MsgKeywordRequired {
		t.Errorf("dropdown body = %v", got)
	}

	if got := (&EnquiryRequest{}).ErrorBody(fieldErr); got != (MessageResponse{Message: MsgMissingMandatory}) {
		t.Errorf("enquiry field body = %v", got)
	}
	if got := (&EnquiryRequest{}).ErrorBody(bindErr); got != (MessageResponse{Message: "unexpected EOF"}) {
		t.Errorf("enquiry bind body = %v", got)
	}

	searchErr := errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "city", Error: MsgSearchParamRequired}})
	if got := (&PropertySearchRequest{}).ErrorBody(searchErr); got != (StatusResponse{Status: StatusError, Data: MsgSearchParamRequired}) {
		t.Errorf("property body = %v", got)
	}
}

func TestEnquiryRow(t *testing.T) {
	row := Enquiry{FullName: "a", Phone: "b", Email: "c", Description: "d", Notification: true}.Row()
	want := []any{"a", "b", "c", "d", true}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("Row() = %v, want %v", row, want)
		}
	}
}

func TestEnquiryRequest_NotificationValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    bool
		wantErr bool
	}{
		{name: "missing", body: `{}`, want: false},
		{name: "null", body: `{"notification":null}`, want: false},
		{name: "bool true", body: `{"notification":true}`, want: true},
		{name: "bool false", body: `{"notification":false}`, want: false},
		{name: "string true", body: `{"notification":"true"}`, want: true},
		{name: "string false", body: `{"notification":"false"}`, want: false},
		{name: "checkbox on", body: `{"notification":"on"}`, want: true},
		{name: "empty string", body: `{"notification":""}`, want: false},
		{name: "string one", body: `{"notification":"1"}`, want: true},
		{name: "number", body: `{"notification":1}`, want: true},
		{name: "zero", body: `{"notification":0}`, want: false},
		{name: "garbage string", body: `{"notification":"maybe"}`, wantErr: true},
		{name: "object", body: `{"notification":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req EnquiryRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && req.Enquiry().Notification != tt.want {
				t.Errorf("Notification = %v, want %v", req.Enquiry().Notification, tt.want)
			}
		})
	}
}
