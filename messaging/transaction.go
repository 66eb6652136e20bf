// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// transactionDomainKey is the BLAKE3 key for transaction ID derivation:
// the ASCII of "adminbot.messaging.txn", zero-padded to 32 bytes.
var transactionDomainKey = [32]byte{
	'a', 'd', 'm', 'i', 'n', 'b', 'o', 't', '.', 'm', 'e', 's', 's', 'a', 'g', 'i',
	'n', 'g', '.', 't', 'x', 'n', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DeriveTransactionID returns a transaction ID that depends only on the
// triggering event and a purpose label. Handling the same command event
// twice (for example after a sync retry) therefore produces the same
// transaction ID, and the homeserver drops the duplicate send.
func DeriveTransactionID(trigger ref.EventID, purpose string) string {
	hasher, err := blake3.NewKeyed(transactionDomainKey[:])
	if err != nil {
		panic("messaging: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(trigger.String()))
	hasher.Write([]byte{0})
	hasher.Write([]byte(purpose))
	sum := hasher.Sum(nil)
	return "adminbot-" + hex.EncodeToString(sum[:16])
}
