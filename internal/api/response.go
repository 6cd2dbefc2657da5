package api

import (
	"strings" // URL joining
	"time"    // Timestamps

	"github.com/gin-gonic/gin" // Gin web framework

	"realty_portal/internal/domain" // Domain models
)

// ImageResponse is one image of a listing or gallery post
type ImageResponse struct {
	ID       uint   `json:"id"`
	Image    string `json:"image"`     // Stored path or external URL
	ImageURL string `json:"image_url"` // Absolute URL
}

type RoomResponse struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Sqm  float64 `json:"sqm"`
}

type ListingResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Price         string          `json:"price"`
	Location      string          `json:"location"`
	Description   string          `json:"description"`
	LivingRoomSqm *float64        `json:"living_room_sqm"`
	KitchenSqm    *float64        `json:"kitchen_sqm"`
	Images        []ImageResponse `json:"images"`
	Rooms         []RoomResponse  `json:"rooms"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type GalleryResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Images      []ImageResponse `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// mediaBase returns the public prefix for stored paths
func mediaBase(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/") + "/"
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/media/"
}

func imageResponse(id uint, path, url, base string) ImageResponse {
	if url != "" {
		return ImageResponse{ID: id, Image: url, ImageURL: url} // External URLs are returned as-is
	}
	return ImageResponse{ID: id, Image: path, ImageURL: base + path}
}

func listingResponse(l *domain.Listing, base string) ListingResponse {
	resp := ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Type:          string(l.Type),
		Category:      l.Category,
		Price:         l.Price,
		Location:      l.Location,
		Description:   l.Description,
		LivingRoomSqm: l.LivingRoomSqm,
		KitchenSqm:    l.KitchenSqm,
		Images:        make([]ImageResponse, len(l.Images)),
		Rooms:         make([]RoomResponse, len(l.Rooms)),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	for i, img := range l.Images {
		resp.Images[i] = imageResponse(img.ID, img.Path, img.URL, base)
	}
	for i, r := range l.Rooms {
		resp.Rooms[i] = RoomResponse{ID: r.ID, Name: r.Name, Sqm: r.Sqm}
	}
	return resp
}

func galleryResponse(p *domain.GalleryPost, base string) GalleryResponse {
	resp := GalleryResponse{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Images:      make([]ImageResponse, len(p.Images)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i, img := range p.Images {
		resp.Images[i] = imageResponse(img.ID, img.Path, img.URL, base)
	}
	return resp
}
