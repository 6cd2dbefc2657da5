package domain

import "time"

// ListingType is sale or lease
type ListingType string

const (
	ListingSale  ListingType = "sale"
	ListingLease ListingType = "lease"
)

// Listing Model
type Listing struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"size:255;not null"`
	Type          ListingType    `gorm:"size:10;not null"`
	Category      string         `gorm:"size:100"`
	Price         string         `gorm:"size:100;not null"` // Free-form, e.g. "₦45,000,000"
	Location      string         `gorm:"size:255"`
	Description   string         `gorm:"type:text"`
	LivingRoomSqm *float64
	KitchenSqm    *float64
	Images        []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	Rooms         []Room         `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PrimaryKey returns the listing ID
func (l *Listing) PrimaryKey() uint { return l.ID }

// ListingImage is one image of a listing; exactly one of Path and URL is set
type ListingImage struct {
	ID        uint   `gorm:"primaryKey"`
	ListingID uint   `gorm:"index;not null"`
	Position  int    `gorm:"not null"`
	Path      string `gorm:"size:255"`
	URL       string `gorm:"type:text"`
}

// Room is a named, measured room of a listing
type Room struct {
	ID        uint    `gorm:"primaryKey"`
	ListingID uint    `gorm:"index;not null"`
	Position  int     `gorm:"not null"`
	Name      string  `gorm:"size:100;not null"`
	Sqm       float64 `gorm:"not null"`
}

// TableName keeps rooms namespaced under listings
func (Room) TableName() string {
	return "listing_rooms"
}
