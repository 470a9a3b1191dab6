package handler

import (
	"context"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/homeauctiondeals/gateway/internal/server"
	"github.com/labstack/echo/v4"
)

const codeEnquiryNotSaved = "ENQUIRY_NOT_SAVED"

type EnquirySubmitter interface {
	Submit(ctx context.Context, e model.Enquiry) error
}

type EnquiryHandler struct {
	Handler
	enquiries EnquirySubmitter
}

func NewEnquiryHandler(s *server.Server, enquiries EnquirySubmitter) *EnquiryHandler {
	return &EnquiryHandler{
		Handler:   NewHandler(s),
		enquiries: enquiries,
	}
}

// SubmitEnquiry serves POST /enquiry.
func (h *EnquiryHandler) SubmitEnquiry(c echo.Context, req *model.EnquiryRequest) (model.StatusResponse, error) {
	if err := h.enquiries.Submit(c.Request().Context(), req.Enquiry()); err != nil {
		return model.StatusResponse{}, errs.NewInternalServerError().
			WithCode(codeEnquiryNotSaved).
			WithCause(err).
			WithBody(model.MessageResponse{Message: model.MsgEnquiryFailed})
	}

	return model.StatusResponse{Status: model.StatusSuccess, Data: model.MsgEnquirySaved}, nil
}
