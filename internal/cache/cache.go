// Package cache provides the TTL response cache used by the itemfetch
// client. The default in-process implementation is Memory.
package cache

import (
	"errors"
	"time"

	"github.com/caldera-labs/itemfetch/transport"
)

// ErrInvalidArgument is returned by Set when the key is empty or the TTL is
// not positive.
var ErrInvalidArgument = errors.New("invalid cache argument")

// Cache defines the interface for response caching.
type Cache interface {
	Get(key string) (*transport.Response, bool)
	Set(key string, resp *transport.Response, ttl time.Duration) error
	Remove(key string)
	Len() int
	Clear()
}
