package cache

import "time"

// Cache is the result-table cache contract. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Stop()
}
