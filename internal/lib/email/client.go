// Package email sends transactional email through Resend.
//
// Templates are HTML files embedded in the binary and rendered with
// html/template before sending.
package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// DefaultFrom is used when ENQUIRY_NOTIFY_FROM is not set.
const DefaultFrom = "Home Auction Deals <onboarding@resend.dev>"

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at another Resend-compatible endpoint.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil {
			return errors.Wrap(err, "invalid resend base url")
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewClient creates an email Client using the Resend API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger, opts ...Option) (*Client, error) {
	from := cfg.Integration.NotifyFrom
	if from == "" {
		from = DefaultFrom
	}

	c := &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   from,
		logger: logger,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient. replyTo may be empty.
func (c *Client) SendEmail(ctx context.Context, to, replyTo, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		ReplyTo: replyTo,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")
	return nil
}
