package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty_portal/internal/domain"
)

func TestLoginAndRefresh(t *testing.T) {
	env := newEnv(t, false)
	env.admin("root@example.com", domain.RoleAdmin)

	w := env.json(http.MethodPost, "/admin/login", map[string]string{"email": "ROOT@example.com", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[struct {
		User    domain.Admin `json:"user"`
		Token   string       `json:"token"`
		Refresh string       `json:"refresh"`
	}](t, w)
	assert.Equal(t, "root@example.com", login.User.Email)
	assert.NotNil(t, login.User.LastLogin)
	assert.NotContains(t, w.Body.String(), "password1")

	// Access token works as bearer, refresh token does not
	assert.Equal(t, http.StatusOK, env.json(http.MethodGet, "/admin/me", nil, login.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, env.json(http.MethodGet, "/admin/me", nil, login.Refresh).Code)

	// Refresh accepts only the refresh token
	w = env.json(http.MethodPost, "/admin/refresh", map[string]string{"refresh": login.Refresh}, "")
	require.Equal(t, http.StatusOK, w.Code)
	fresh := decode[map[string]string](t, w)
	assert.Equal(t, http.StatusOK, env.json(http.MethodGet, "/admin/me", nil, fresh["token"]).Code)
	assert.Equal(t, http.StatusUnauthorized, env.json(http.MethodPost, "/admin/refresh", map[string]string{"refresh": login.Token}, "").Code)

	w = env.json(http.MethodPost, "/admin/login", map[string]string{"email": "root@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_ValidationDetail(t *testing.T) {
	env := newEnv(t, false)
	w := env.json(http.MethodPost, "/admin/login", map[string]string{"email": "not-an-email"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.Equal(t, "Enter a valid email address.", body.Fields["email"])
	assert.Equal(t, "This field is required.", body.Fields["password"])
}

func TestAdminSelfDeletion(t *testing.T) {
	env := newEnv(t, false)
	root, rootTok := env.admin("root@example.com", domain.RoleAdmin)
	_, otherTok := env.admin("other@example.com", domain.RoleAdmin)

	w := env.json(http.MethodDelete, fmt.Sprintf("/admin/delete/%d", root.ID), nil, rootTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"You cannot delete your own admin account."}`, w.Body.String())
	_, err := env.admins.Get(context.Background(), root.ID)
	require.NoError(t, err, "row remains")

	w = env.json(http.MethodDelete, fmt.Sprintf("/admin/delete/%d", root.ID), nil, otherTok)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = env.admins.Get(context.Background(), root.ID)
	assert.Error(t, err)

	w = env.json(http.MethodDelete, "/admin/delete/9999", nil, otherTok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminManagementRequiresAdminRole(t *testing.T) {
	env := newEnv(t, false)
	_, modTok := env.admin("mod@example.com", domain.RoleModerator)
	_, rootTok := env.admin("root@example.com", domain.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, env.json(http.MethodGet, "/admin/users", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, env.json(http.MethodGet, "/admin/users", nil, modTok).Code)

	w := env.json(http.MethodGet, "/admin/users", nil, rootTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Admin](t, w), 2)
}

func TestCreateAdmin(t *testing.T) {
	env := newEnv(t, false)
	_, rootTok := env.admin("root@example.com", domain.RoleAdmin)

	w := env.json(http.MethodPost, "/admin/create", map[string]any{
		"email": "new@example.com", "password": "secret1", "role": "moderator", "is_staff": true,
	}, rootTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Message string       `json:"message"`
		Admin   domain.Admin `json:"admin"`
	}](t, w)
	assert.Equal(t, "Admin created successfully", created.Message)
	assert.Equal(t, domain.RoleModerator, created.Admin.Role)
	assert.True(t, created.Admin.IsActive)
	assert.True(t, created.Admin.IsStaff)

	w = env.json(http.MethodPost, "/admin/create", map[string]any{"email": "new@example.com", "password": "secret1"}, rootTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	w = env.json(http.MethodPost, "/admin/create", map[string]any{"email": "x@example.com", "password": "123", "role": "root"}, rootTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w).Fields
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "role")

	// Inactive accounts cannot log in
	w = env.json(http.MethodPost, "/admin/create", map[string]any{"email": "off@example.com", "password": "secret1", "is_active": false}, rootTok)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.json(http.MethodPost, "/admin/login", map[string]string{"email": "off@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
