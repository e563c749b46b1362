package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when neither credential source is configured
var ErrNoCredentials = errors.New("no credentials found: set GOOGLE_SHEETS_CREDS (JSON string) or GOOGLE_SHEETS_CREDS_FILE (path to JSON file)")

// Credentials names where the service account document comes from.
// Inline JSON takes precedence over the file path.
type Credentials struct {
	JSON string
	File string
}

// Resolve loads the service account document and scopes it for Sheets
func (c Credentials) Resolve(ctx context.Context) (*google.Credentials, error) {
	var data []byte
	switch {
	case c.JSON != "":
		data = []byte(c.JSON)
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		data = b
	default:
		return nil, ErrNoCredentials
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheetsv4.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds, nil
}

// NewService builds an authenticated Sheets API client
func NewService(ctx context.Context, c Credentials) (*sheetsv4.Service, error) {
	creds, err := c.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := sheetsv4.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return srv, nil
}
