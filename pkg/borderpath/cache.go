package borderpath

import (
	"sync"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// Cache holds one trace per path type, each computed at most once. The zero
// value is ready to use and safe for concurrent use.
type Cache[T any] struct {
	once   [astrometrics.PathTypeCount]sync.Once
	values [astrometrics.PathTypeCount]T
}

// Get returns the cached value for pathType, calling compute on first use.
// Concurrent first callers block until the single computation finishes.
func (c *Cache[T]) Get(pathType astrometrics.PathType, compute func() T) T {
	c.once[pathType].Do(func() {
		c.values[pathType] = compute()
	})
	return c.values[pathType]
}
