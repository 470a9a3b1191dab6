// Package sheets appends rows to a Google spreadsheet using a service
// account.
package sheets

import (
	"context"
	"fmt"

	"github.com/homeauctiondeals/gateway/internal/config"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValueInputOption makes Sheets parse appended values as if typed by a user.
const ValueInputOption = "USER_ENTERED"

// Client appends rows to one spreadsheet range.
type Client struct {
	service       *gsheets.Service
	spreadsheetID string
	appendRange   string
}

// NewClient authenticates with the configured service-account file. When
// opts are given they replace the credential options entirely.
func NewClient(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}
	}

	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.Range,
	}, nil
}

// AppendRow appends a single row after the last row of the range.
func (c *Client) AppendRow(ctx context.Context, row []any) error {
	values := &gsheets.ValueRange{Values: [][]any{row}}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.appendRange, values).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s!%s: %w", c.spreadsheetID, c.appendRange, err)
	}
	return nil
}
