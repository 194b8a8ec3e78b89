package sheets

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client appends rows to a single configured spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient builds a Sheets client from a base64-encoded service account
// credentials JSON, the form the deployment environment carries it in.
func NewClient(ctx context.Context, spreadsheetID, credentialsBase64 string) (*Client, error) {
	creds, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// AppendRow appends exactly one row after the current data region of the
// first sheet.
func (c *Client) AppendRow(ctx context.Context, row []interface{}) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, "A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append spreadsheet row: %w", err)
	}
	return nil
}
