// Package checksum provides content digests used for derived note ids and
// output fingerprints.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns the first 16 hex characters of Sum. Used for deterministic
// note ids derived from vault name + fname.
func Short(data []byte) string {
	return Sum(data)[:16]
}

// SumJSON returns the digest of v's canonical JSON encoding. Map keys are
// sorted by encoding/json, so equal values yield equal fingerprints.
func SumJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("checksum: marshal: %w", err)
	}
	return Sum(data), nil
}
