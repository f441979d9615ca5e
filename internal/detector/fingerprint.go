package detector

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint derives the scam-store lookup key for a payee name, barcode or
// PIX key: lowercase, whitespace collapsed, then hashed so stored signatures
// never carry raw payee text. The hash is for lookup-key stability only, not
// a cryptographic protection of payee identity.
func Fingerprint(value string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(value), " "))
	sum := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(sum[:])
}
