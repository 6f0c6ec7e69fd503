package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "kind:<sha256>" from the JSON encoding of parts. Requests
// are normalized before they get here, so equal routes share a key.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts) // requests and render options always encode
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Graph fingerprints are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
