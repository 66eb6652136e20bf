// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/secret"
	"github.com/bureau-foundation/adminbot/messaging"
)

// SessionData is the JSON structure of the session file written by
// "adminbot login".
type SessionData struct {
	HomeserverURL string `json:"homeserver_url"`
	UserID        string `json:"user_id"`
	DeviceID      string `json:"device_id,omitempty"`
	AccessToken   string `json:"access_token"`
}

// LoadSession reads the Matrix session from sessionPath and returns an
// authenticated client and session. The homeserverURL parameter
// overrides the URL stored in the file when non-empty. httpClient may
// be nil.
//
// The access token is moved into mmap-backed guarded memory by the
// messaging library. The raw JSON bytes are zeroed after parsing.
//
// The caller must call Close on the session to release the guarded memory.
func LoadSession(sessionPath, homeserverURL string, httpClient *http.Client, logger *slog.Logger) (*messaging.Client, *messaging.DirectSession, error) {
	jsonData, err := os.ReadFile(sessionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading session from %s: %w", sessionPath, err)
	}

	var data SessionData
	err = json.Unmarshal(jsonData, &data)
	secret.Zero(jsonData)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing session from %s: %w", sessionPath, err)
	}

	if data.AccessToken == "" {
		return nil, nil, fmt.Errorf("session file %s has empty access token", sessionPath)
	}

	userID, err := ref.ParseUserID(data.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid user_id in %s: %w", sessionPath, err)
	}

	serverURL := homeserverURL
	if serverURL == "" {
		serverURL = data.HomeserverURL
	}

	client, err := messaging.NewClient(messaging.ClientConfig{
		HomeserverURL: serverURL,
		HTTPClient:    httpClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating matrix client: %w", err)
	}

	session, err := client.SessionFromToken(userID, data.DeviceID, data.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return client, session, nil
}

// SaveSession writes a Matrix session to sessionPath with mode 0600,
// creating the parent directory (0700) if needed.
//
// The JSON bytes are zeroed after writing to limit the window during
// which the access token exists in process memory as cleartext.
func SaveSession(sessionPath, homeserverURL string, session *messaging.DirectSession) error {
	data := SessionData{
		HomeserverURL: homeserverURL,
		UserID:        session.UserID().String(),
		DeviceID:      session.DeviceID(),
		AccessToken:   session.AccessToken(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	defer secret.Zero(jsonData)

	if err := os.MkdirAll(filepath.Dir(sessionPath), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	// Write to a temporary file and rename so a crash never leaves a
	// truncated session behind.
	temporary := sessionPath + ".tmp"
	if err := os.WriteFile(temporary, jsonData, 0600); err != nil {
		return fmt.Errorf("writing session to %s: %w", temporary, err)
	}
	if err := os.Rename(temporary, sessionPath); err != nil {
		os.Remove(temporary)
		return fmt.Errorf("writing session to %s: %w", sessionPath, err)
	}
	return nil
}

// ValidateSession calls WhoAmI to verify the session's access token is
// still valid and belongs to the expected user. Call it once at startup
// after LoadSession.
func ValidateSession(ctx context.Context, session messaging.Session) (ref.UserID, error) {
	userID, err := session.WhoAmI(ctx)
	if err != nil {
		return ref.UserID{}, fmt.Errorf("validating matrix session: %w", err)
	}
	if expected := session.UserID(); !expected.IsZero() && userID != expected {
		return ref.UserID{}, fmt.Errorf("validating matrix session: token belongs to %s, session file says %s", userID, expected)
	}
	return userID, nil
}
