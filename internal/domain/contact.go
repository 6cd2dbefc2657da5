package domain

import "time"

// ContactMessage Model
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Name      string    `gorm:"size:100;not null" json:"name"`    // Sender name
	Email     string    `gorm:"size:254;not null" json:"email"`   // Sender address, receives the acknowledgement
	Phone     *string   `gorm:"size:20" json:"phone"`             // Optional phone
	Subject   string    `gorm:"size:200;not null" json:"subject"` // Subject line
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;index" json:"is_read"` // Toggled by staff
	CreatedAt time.Time `gorm:"index" json:"created_at"`       // Submission time
}
