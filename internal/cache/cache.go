package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching provider responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a request descriptor such as
// "lookup:123 So. 2d 456".
func Key(descriptor string) string {
	hash := sha256.Sum256([]byte(descriptor))
	return "briefcheck:v1:" + hex.EncodeToString(hash[:])
}
