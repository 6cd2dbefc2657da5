package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"realty_portal/internal/store" // Persistence
)

// galleryPage is the cached list envelope
type galleryPage struct {
	Posts      []GalleryResponse `json:"posts"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
	Cached     bool              `json:"cached"`
}

// ListGalleryHandler returns one page of gallery posts
func ListGalleryHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cacheKey := ct.cacheKey(c, galleryCachePrefix, "category", "page", "page_size")
		var cached galleryPage
		if found, err := ct.Cache.Get(ctx, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		page, pageSize := pageParams(c)
		posts, total, err := ct.Gallery.List(ctx, c.Query("category"), page, pageSize)
		if err != nil {
			respondStoreError(c, err, "fetch gallery")
			return
		}
		base := mediaBase(c, ct.MediaBaseURL)
		resp := galleryPage{
			Posts:      make([]GalleryResponse, len(posts)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		}
		for i := range posts {
			resp.Posts[i] = galleryResponse(&posts[i], base)
		}
		_ = ct.Cache.Set(ctx, cacheKey, resp, ct.CacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

func GetGalleryHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		p, err := ct.Gallery.Get(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "fetch gallery post")
			return
		}
		c.JSON(http.StatusOK, galleryResponse(p, mediaBase(c, ct.MediaBaseURL)))
	}
}

func CreateGalleryHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := ct.decode(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		p, err := ct.Gallery.Create(ctx, store.GalleryInput{Fields: req.Fields, Files: req.Files, Images: req.Images})
		if err != nil {
			respondWriteError(c, err, "create gallery post")
			return
		}
		logrus.WithFields(logrus.Fields{"post_id": p.ID, "images": len(p.Images)}).Info("gallery post created")
		ct.invalidate(ctx, galleryCachePrefix)
		c.JSON(http.StatusCreated, galleryResponse(p, mediaBase(c, ct.MediaBaseURL)))
	}
}

func UpdateGalleryHandler(ct *Content, partial bool) gin.HandlerFunc {
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
		p, err := ct.Gallery.Update(ctx, id, store.GalleryInput{Fields: req.Fields, Files: req.Files, Images: req.Images}, partial)
		if err != nil {
			respondWriteError(c, err, "update gallery post")
			return
		}
		ct.invalidate(ctx, galleryCachePrefix)
		c.JSON(http.StatusOK, galleryResponse(p, mediaBase(c, ct.MediaBaseURL)))
	}
}

func DeleteGalleryHandler(ct *Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		ctx := c.Request.Context()
		if err := ct.Gallery.Delete(ctx, id); err != nil {
			respondStoreError(c, err, "delete gallery post")
			return
		}
		logrus.WithField("post_id", id).Info("gallery post deleted")
		ct.invalidate(ctx, galleryCachePrefix)
		c.Status(http.StatusNoContent)
	}
}
