package email

import (
	"context"
	"fmt"

	"github.com/homeauctiondeals/gateway/internal/model"
)

// SendEnquiryNotification tells the team inbox about a new enquiry. Replies
// go straight to the person who submitted it.
func (c *Client) SendEnquiryNotification(ctx context.Context, to string, enquiry model.Enquiry) error {
	return c.SendEmail(
		ctx,
		to,
		enquiry.Email,
		fmt.Sprintf("New enquiry from %s", enquiry.FullName),
		TemplateEnquiryNotification,
		enquiryData(enquiry),
	)
}

func enquiryData(e model.Enquiry) map[string]string {
	notification := "No"
	if e.Notification {
		notification = "Yes"
	}

	return map[string]string{
		"FullName":     e.FullName,
		"Phone":        e.Phone,
		"Email":        e.Email,
		"Description":  e.Description,
		"Notification": notification,
	}
}
