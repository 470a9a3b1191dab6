package service

import (
	"context"
	"fmt"

	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/rs/zerolog"
)

type RowAppender interface {
	AppendRow(ctx context.Context, row []any) error
}

// Notifier schedules the team notification for a saved enquiry.
type Notifier interface {
	EnqueueEnquiryNotification(ctx context.Context, e model.Enquiry) error
}

type EnquiryService struct {
	sheet    RowAppender
	notifier Notifier
}

// NewEnquiryService builds the service. notifier may be nil, in which case
// no notification is sent.
func NewEnquiryService(sheet RowAppender, notifier Notifier) *EnquiryService {
	return &EnquiryService{sheet: sheet, notifier: notifier}
}

// Submit appends the enquiry as one spreadsheet row. Duplicate submissions
// produce duplicate rows.
func (s *EnquiryService) Submit(ctx context.Context, e model.Enquiry) error {
	if err := s.sheet.AppendRow(ctx, e.Row()); err != nil {
		return fmt.Errorf("saving enquiry: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	// The row is saved; a lost notification must not fail the request.
	if err := s.notifier.EnqueueEnquiryNotification(ctx, e); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to enqueue enquiry notification")
	}
	return nil
}
