package domain

import "time"

// Gallery categories
const (
	GalleryResidential = "residential"
	GalleryCommercial  = "commercial"
	GalleryRenovation  = "renovation"
)

// GalleryPost Model
type GalleryPost struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"size:255;not null"`
	Category    string         `gorm:"size:50;not null"`
	Description string         `gorm:"type:text"`
	Images      []GalleryImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PrimaryKey returns the post ID
func (p *GalleryPost) PrimaryKey() uint { return p.ID }

// GalleryImage is one image of a gallery post; exactly one of Path and URL is set
type GalleryImage struct {
	ID       uint   `gorm:"primaryKey"`
	PostID   uint   `gorm:"index;not null"`
	Position int    `gorm:"not null"`
	Path     string `gorm:"size:255"`
	URL      string `gorm:"type:text"`
}
