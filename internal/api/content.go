package api

import (
	"context"  // Cache calls
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // Cache key building
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"realty_portal/internal/search" // Listing index
	"realty_portal/internal/store"  // Persistence
	"realty_portal/internal/upsert" // Engine errors
	"realty_portal/internal/utils"  // Response cache
)

// Cache key prefixes, dropped on every write of that kind
const (
	listingsCachePrefix = "listings:"
	galleryCachePrefix  = "gallery:"
)

// Content bundles what the listing and gallery handlers need
type Content struct {
	Listings       *store.ListingStore
	Gallery        *store.GalleryStore
	Cache          utils.Cache
	CacheTTL       time.Duration
	Index          search.Indexer // nil means SQL search
	MediaBaseURL   string         // empty builds URLs from the request host
	MaxUploadBytes int64
}

// cacheKey identifies a list response; the host is part of it when image URLs depend on it
func (ct *Content) cacheKey(c *gin.Context, prefix string, params ...string) string {
	parts := []string{}
	if ct.MediaBaseURL == "" {
		parts = append(parts, "host="+c.Request.Host)
	}
	for _, k := range params {
		parts = append(parts, k+"="+c.Query(k))
	}
	return prefix + strings.Join(parts, ":")
}

// invalidate drops cached pages after a write
func (ct *Content) invalidate(ctx context.Context, prefix string) {
	if err := ct.Cache.DeletePrefix(ctx, prefix); err != nil {
		logrus.WithField("prefix", prefix).WithError(err).Warn("cache invalidation failed")
	}
}

// decode reads a nested write body or writes the 400 itself
func (ct *Content) decode(c *gin.Context) (*nestedRequest, bool) {
	req, err := decodeNested(c, ct.MaxUploadBytes)
	switch {
	case err == nil:
		return req, true
	case errors.Is(err, errBodyTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
	case errors.Is(err, errNotImage):
		respondValidation(c, map[string]string{
			"images": "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	}
	return nil, false
}

// respondWriteError handles engine errors on top of the generic store mapping
func respondWriteError(c *gin.Context, err error, action string) {
	if errors.Is(err, upsert.ErrNoMediaStore) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File uploads are not enabled"})
		return
	}
	respondStoreError(c, err, action)
}
