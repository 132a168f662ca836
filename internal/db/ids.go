package db

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const idPrefix = "tm-"

// NormalizeMemberID ensures a member ID has the tm- prefix.
// Accepts bare hex IDs like "abc123" and returns "tm-abc123"
func NormalizeMemberID(id string) string {
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, idPrefix) {
		return idPrefix + id
	}
	return id
}

// idGenerator is the function used to generate member IDs.
// It can be replaced in tests to control ID generation.
var idGenerator = defaultGenerateID

func defaultGenerateID() (string, error) {
	bytes := make([]byte, 3) // 6 hex characters
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return idPrefix + hex.EncodeToString(bytes), nil
}

func generateID() (string, error) {
	return idGenerator()
}
