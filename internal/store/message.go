package store

import (
	"context"

	"gorm.io/gorm"

	"realty_portal/internal/domain"
)

// MessageStore persists contact messages.
type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(ctx context.Context, msg *domain.ContactMessage) error {
	msg.IsRead = false
	return s.db.WithContext(ctx).Create(msg).Error
}

// List returns one page of messages, newest first; isRead filters when non-nil.
func (s *MessageStore) List(ctx context.Context, isRead *bool, page, pageSize int) ([]domain.ContactMessage, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if isRead != nil {
			return db.Where("is_read = ?", *isRead)
		}
		return db
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.ContactMessage{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var msgs []domain.ContactMessage
	err := s.db.WithContext(ctx).Scopes(filter, paginate(page, pageSize)).
		Order("created_at desc, id desc").
		Find(&msgs).Error
	return msgs, total, err
}

// SetRead toggles the read flag and returns the updated message.
func (s *MessageStore) SetRead(ctx context.Context, id uint, read bool) (*domain.ContactMessage, error) {
	var msg domain.ContactMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return err
		}
		msg.IsRead = read
		return tx.Model(&msg).Update("is_read", read).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
