package api

import (
	"context"  // Index calls
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"realty_portal/internal/domain" // Domain models
	"realty_portal/internal/store"  // Persistence
)

// listingPage is the cached list envelope
type listingPage struct {
	Listings   []ListingResponse `json:"listings"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
	Cached     bool              `json:"cached"`
}

// ListListingsHandler returns one page of listings, filtered by type and category
func ListListingsHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cacheKey := ct.cacheKey(c, listingsCachePrefix, "type", "category", "page", "page_size")
		// If cached data found, return it
		var cached listingPage
		if found, err := ct.Cache.Get(ctx, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		page, pageSize := pageParams(c)
		listings, total, err := ct.Listings.List(ctx, store.ListingFilter{
			Type:     c.Query("type"),
			Category: c.Query("category"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			respondStoreError(c, err, "fetch listings")
			return
		}
		base := mediaBase(c, ct.MediaBaseURL)
		resp := listingPage{
			Listings:   make([]ListingResponse, len(listings)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		}
		for i := range listings {
			resp.Listings[i] = listingResponse(&listings[i], base)
		}
		// Cache the response for future requests
		_ = ct.Cache.Set(ctx, cacheKey, resp, ct.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// GetListingHandler returns one listing
func GetListingHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		l, err := ct.Listings.Get(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "fetch listing")
			return
		}
		c.JSON(http.StatusOK, listingResponse(l, mediaBase(c, ct.MediaBaseURL)))
	}
}

// CreateListingHandler creates a listing with its images and rooms
func CreateListingHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := ct.decode(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		l, err := ct.Listings.Create(ctx, store.ListingInput{
			Fields: req.Fields,
			Files:  req.Files,
			Images: req.Images,
			Rooms:  req.Rooms,
		})
		if err != nil {
			respondWriteError(c, err, "create listing")
			return
		}
		logrus.WithFields(logrus.Fields{
			"listing_id": l.ID,
			"images":     len(l.Images),
			"rooms":      len(l.Rooms),
		}).Info("listing created")
		ct.afterListingWrite(ctx, l)
		c.JSON(http.StatusCreated, listingResponse(l, mediaBase(c, ct.MediaBaseURL)))
	}
}

// UpdateListingHandler handles PUT (partial=false) and PATCH (partial=true)
func UpdateListingHandler(ct *Content, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		req, ok := ct.decode(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		l, err := ct.Listings.Update(ctx, id, store.ListingInput{
			Fields: req.Fields,
			Files:  req.Files,
			Images: req.Images,
			Rooms:  req.Rooms,
		}, partial)
		if err != nil {
			respondWriteError(c, err, "update listing")
			return
		}
		ct.afterListingWrite(ctx, l)
		c.JSON(http.StatusOK, listingResponse(l, mediaBase(c, ct.MediaBaseURL)))
	}
}

// DeleteListingHandler removes a listing and its children
func DeleteListingHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		ctx := c.Request.Context()
		if err := ct.Listings.Delete(ctx, id); err != nil {
			respondStoreError(c, err, "delete listing")
			return
		}
		logrus.WithField("listing_id", id).Info("listing deleted")
		if ct.Index != nil {
			if err := ct.Index.RemoveListing(ctx, id); err != nil {
				logrus.WithField("listing_id", id).WithError(err).Warn("search index removal failed")
			}
		}
		ct.invalidate(ctx, listingsCachePrefix)
		c.Status(http.StatusNoContent)
	}
}

// SearchListingsHandler matches listings by text, through the index when configured
func SearchListingsHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		query := c.Query("q")
		limit := defaultPageSize
		if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= maxPageSize {
			limit = v
		}
		listings, engine, err := ct.search(ctx, query, limit)
		if err != nil {
			respondStoreError(c, err, "search listings")
			return
		}
		base := mediaBase(c, ct.MediaBaseURL)
		resp := make([]ListingResponse, len(listings))
		for i := range listings {
			resp[i] = listingResponse(&listings[i], base)
		}
		c.JSON(http.StatusOK, gin.H{"listings": resp, "query": query, "engine": engine})
	}
}

// search falls back to SQL when the index is missing or failing
func (ct *Content) search(ctx context.Context, query string, limit int) ([]domain.Listing, string, error) {
	if ct.Index != nil {
		ids, err := ct.Index.SearchIDs(ctx, query, limit)
		if err == nil {
			listings, err := ct.Listings.ByIDs(ctx, ids)
			return listings, "meilisearch", err
		}
		logrus.WithField("query", query).WithError(err).Warn("search index unavailable, using SQL")
	}
	listings, err := ct.Listings.Search(ctx, query, limit)
	return listings, "sql", err
}

// afterListingWrite refreshes the index and drops cached pages
func (ct *Content) afterListingWrite(ctx context.Context, l *domain.Listing) {
	if ct.Index != nil {
		if err := ct.Index.IndexListing(ctx, l); err != nil {
			logrus.WithField("listing_id", l.ID).WithError(err).Warn("search indexing failed")
		}
	}
	ct.invalidate(ctx, listingsCachePrefix)
}
