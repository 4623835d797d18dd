package sync

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetClient reads the one fixed-name sheet the eligibility rules live in.
type SheetClient interface {
	ReadSheet(ctx context.Context, spreadsheetID, sheetName string) ([][]interface{}, error)
}

type googleSheetClient struct {
	svc *sheets.Service
}

// NewGoogleSheetClient builds a SheetClient from a service-account
// credentials file.
func NewGoogleSheetClient(ctx context.Context, credentialsFile string) (SheetClient, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets service: %w", err)
	}
	return &googleSheetClient{svc: svc}, nil
}

func (c *googleSheetClient) ReadSheet(ctx context.Context, spreadsheetID, sheetName string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return resp.Values, nil
}
