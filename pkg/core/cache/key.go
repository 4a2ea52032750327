package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentKey derives a cache key from content and the settings that
// influence how it is processed
func ContentKey(content string, settings ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(settings, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
