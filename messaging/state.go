// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// GetState fetches a state event and decodes its content into T. The
// (value, found, err) shape turns M_NOT_FOUND into found=false; every
// other failure is an error.
func GetState[T any](ctx context.Context, session Session, roomID ref.RoomID, eventType ref.EventType, stateKey string) (T, bool, error) {
	var content T
	raw, err := session.GetStateEvent(ctx, roomID, eventType, stateKey)
	if err != nil {
		if IsMatrixError(err, ErrCodeNotFound) {
			return content, false, nil
		}
		return content, false, err
	}
	if err := json.Unmarshal(raw, &content); err != nil {
		return content, false, fmt.Errorf("messaging: decoding %s state in %s: %w", eventType, roomID, err)
	}
	return content, true, nil
}
