// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// validateUserID checks the @localpart:server form.
func validateUserID(userID string) error {
	return validatePrefixedID(userID, '@', "Matrix user ID")
}

// validateRoomAlias checks the #localpart:server form.
func validateRoomAlias(alias string) error {
	return validatePrefixedID(alias, '#', "room alias")
}

// validatePrefixedID checks a Matrix identifier with the given sigil:
// a non-empty localpart, a ':', and a non-empty server. The server may
// itself contain a ':' (host:port), so the split happens at the first
// colon after the sigil.
func validatePrefixedID(identifier string, sigil byte, kind string) error {
	if len(identifier) < 2 || identifier[0] != sigil {
		return fmt.Errorf("invalid %s %q: must start with %c", kind, identifier, sigil)
	}
	colonIndex := strings.IndexByte(identifier[1:], ':')
	if colonIndex < 0 {
		return fmt.Errorf("invalid %s %q: missing :server", kind, identifier)
	}
	if colonIndex == 0 {
		return fmt.Errorf("invalid %s %q: empty localpart", kind, identifier)
	}
	if identifier[1+colonIndex+1:] == "" {
		return fmt.Errorf("invalid %s %q: empty server", kind, identifier)
	}
	return nil
}
