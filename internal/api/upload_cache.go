package api

import (
	"sync"
	"time"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/mapper"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

// cachedUpload holds a parsed table between upload and conversion. The
// proposed mapping is kept alongside so a convert without an override still
// works.
type cachedUpload struct {
	userID    string
	filename  string
	fileType  string
	table     *tabular.Table
	mapping   mapper.Mapping
	expiresAt time.Time
}

// uploadCache is an in-memory key-value store for uploaded tables, keyed by
// file ID. Entries expire after the TTL; expired entries are purged on every
// access.
type uploadCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]cachedUpload
}

func newUploadCache(ttl time.Duration) *uploadCache {
	return &uploadCache{
		ttl:   ttl,
		items: make(map[string]cachedUpload),
	}
}

func (c *uploadCache) put(fileID string, upload cachedUpload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked(time.Now())

	upload.expiresAt = time.Now().Add(c.ttl)
	c.items[fileID] = upload
}

// get returns the upload for fileID when it exists, has not expired, and
// belongs to userID.
func (c *uploadCache) get(fileID, userID string) (cachedUpload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked(time.Now())

	v, ok := c.items[fileID]
	if !ok || v.userID != userID {
		return cachedUpload{}, false
	}
	return v, true
}

func (c *uploadCache) purgeExpiredLocked(now time.Time) {
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
}
