package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// NewID returns prefix-<8 lowercase base32 chars> (~40 bits).
func NewID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}

// ContentRef is the body key for a scene.
func ContentRef(sceneID string) string {
	return "body-" + strings.TrimPrefix(sceneID, "scn-")
}
