package sheets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCredentials_NoneConfigured(t *testing.T) {
	_, err := Credentials{}.Resolve(context.Background())
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Expected ErrNoCredentials, got %v", err)
	}
	if !strings.Contains(err.Error(), "GOOGLE_SHEETS_CREDS") {
		t.Errorf("Expected error to name the variables, got: %v", err)
	}
}

func TestCredentials_InvalidJSON(t *testing.T) {
	_, err := Credentials{JSON: "{not json"}.Resolve(context.Background())
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if errors.Is(err, ErrNoCredentials) {
		t.Error("Expected parse error, not ErrNoCredentials")
	}
}

func TestCredentials_MissingFile(t *testing.T) {
	_, err := Credentials{File: filepath.Join(t.TempDir(), "missing.json")}.Resolve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to read credentials file") {
		t.Fatalf("Expected read error, got %v", err)
	}
}

func TestCredentials_InlineJSONWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	// The file is invalid, so success proves it was never read.
	creds, err := Credentials{
		JSON: `{"type": "authorized_user", "client_id": "id", "client_secret": "secret", "refresh_token": "token"}`,
		File: path,
	}.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Expected inline JSON to be used, got %v", err)
	}
	if creds == nil || creds.TokenSource == nil {
		t.Error("Expected usable credentials")
	}
}
