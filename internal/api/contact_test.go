package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty_portal/internal/domain"
)

func contactBody() map[string]string {
	return map[string]string{
		"name": "Ada", "email": "ada@example.com", "subject": "Viewing", "message": "Is Saturday ok?",
	}
}

func TestContact_StoredEvenWhenMailFails(t *testing.T) {
	env := newEnv(t, false)
	env.notifier.err = errors.New("smtp down")

	w := env.json(http.MethodPost, "/contact", contactBody(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode[domain.ContactMessage](t, w)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.IsRead)
	assert.Len(t, env.notifier.sent, 1)

	var n int64
	env.db.Model(&domain.ContactMessage{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestContact_Validation(t *testing.T) {
	env := newEnv(t, false)
	body := contactBody()
	body["email"] = "nope"
	delete(body, "subject")

	w := env.json(http.MethodPost, "/contact", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w).Fields
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "subject")
	assert.Empty(t, env.notifier.sent)
}

func TestMessages_StaffOnly(t *testing.T) {
	env := newEnv(t, false)
	require.Equal(t, http.StatusCreated, env.json(http.MethodPost, "/contact", contactBody(), "").Code)
	_, userTok := env.admin("user@example.com", domain.RoleUser)
	_, modTok := env.admin("mod@example.com", domain.RoleModerator)

	assert.Equal(t, http.StatusForbidden, env.json(http.MethodGet, "/admin/messages", nil, userTok).Code)

	w := env.json(http.MethodGet, "/admin/messages?is_read=false", nil, modTok)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Messages []domain.ContactMessage `json:"messages"`
		Total    int64                   `json:"total"`
	}](t, w)
	require.Len(t, list.Messages, 1)

	path := fmt.Sprintf("/admin/messages/%d", list.Messages[0].ID)
	w = env.json(http.MethodPatch, path, map[string]bool{"is_read": true}, modTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[domain.ContactMessage](t, w).IsRead)

	assert.Equal(t, http.StatusBadRequest, env.json(http.MethodPatch, path, map[string]any{}, modTok).Code)
	assert.Equal(t, http.StatusBadRequest, env.json(http.MethodGet, "/admin/messages?is_read=maybe", nil, modTok).Code)
}

func TestHealth(t *testing.T) {
	env := newEnv(t, false)
	w := env.json(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
