package api

import (
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"realty_portal/internal/domain" // Importing domain models
	"realty_portal/internal/store"  // Message persistence
)

// Notifier tells people about a stored contact message
type Notifier interface {
	Notify(msg *domain.ContactMessage) error
}

// Request struct for the contact form
type ContactRequest struct {
	Name    string  `json:"name" form:"name" binding:"required,max=100"`
	Email   string  `json:"email" form:"email" binding:"required,email,max=254"`
	Phone   *string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Subject string  `json:"subject" form:"subject" binding:"required,max=200"`
	Message string  `json:"message" form:"message" binding:"required"`
}

// Request struct for toggling the read flag
type MarkMessageRequest struct {
	IsRead *bool `json:"is_read" form:"is_read" binding:"required"`
}

// ContactHandler stores a contact message and then notifies; a failed notification is only logged
func ContactHandler(messages *store.MessageStore, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		msg := &domain.ContactMessage{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   req.Phone,
			Subject: strings.TrimSpace(req.Subject),
			Message: req.Message,
		}
		if msg.Phone != nil && strings.TrimSpace(*msg.Phone) == "" {
			msg.Phone = nil // Blank phone is stored as absent
		}
		if err := messages.Create(c.Request.Context(), msg); err != nil {
			respondStoreError(c, err, "save message")
			return
		}
		log := logrus.WithFields(logrus.Fields{"message_id": msg.ID, "email": msg.Email})
		if notifier != nil {
			if err := notifier.Notify(msg); err != nil {
				log.WithError(err).Warn("contact notification failed")
			}
		}
		log.Info("contact message received")
		c.JSON(http.StatusCreated, msg)
	}
}

// ListMessagesHandler returns contact messages, newest first, optionally filtered by is_read
func ListMessagesHandler(messages *store.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var isRead *bool
		switch c.Query("is_read") {
		case "":
		case "true", "1":
			v := true
			isRead = &v
		case "false", "0":
			v := false
			isRead = &v
		default:
			respondValidation(c, map[string]string{"is_read": "Must be a valid boolean."})
			return
		}
		page, pageSize := pageParams(c)
		msgs, total, err := messages.List(c.Request.Context(), isRead, page, pageSize)
		if err != nil {
			respondStoreError(c, err, "fetch messages")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"messages":    msgs,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages(total, pageSize),
		})
	}
}

// MarkMessageHandler sets the read flag of a message
func MarkMessageHandler(messages *store.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		var req MarkMessageRequest
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		msg, err := messages.SetRead(c.Request.Context(), id, *req.IsRead)
		if err != nil {
			respondStoreError(c, err, "update message")
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}
