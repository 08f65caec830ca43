package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// TestConfigHash fingerprints a hypothesis configuration. An ensemble carries
// the hash it was built under; a report against a different hash is a reuse
// bug, not a valid comparison.
type TestConfigHash Hash

func (h TestConfigHash) String() string { return Hash(h).String() }

// ComputeTestConfigHash hashes the statistic name, the sample count, and any
// extra parameters (multipole band, reference axis, etc.) in sorted key order.
func ComputeTestConfigHash(statistic string, nSims int, params map[string]interface{}) TestConfigHash {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString(statistic)
	data.WriteString(fmt.Sprintf("|n=%d", nSims))
	for _, key := range keys {
		data.WriteString("|")
		data.WriteString(key)
		data.WriteString("=")
		data.WriteString(fmt.Sprintf("%v", params[key]))
	}

	return TestConfigHash(NewHash([]byte(data.String())))
}
