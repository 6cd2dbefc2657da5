package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"realty_portal/internal/db"
	"realty_portal/internal/domain"
	"realty_portal/internal/media"
	"realty_portal/internal/store"
	"realty_portal/internal/utils"
)

const testSecret = "test-secret"

type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	admins   *store.AdminStore
	media    *media.MemoryStore
	notifier *fakeNotifier
}

type fakeNotifier struct {
	err  error
	sent []*domain.ContactMessage
}

func (f *fakeNotifier) Notify(msg *domain.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func newEnv(t *testing.T, protect bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	mem := media.NewMemoryStore()
	env := &testEnv{t: t, db: gdb, admins: store.NewAdminStore(gdb), media: mem, notifier: &fakeNotifier{}}
	router, err := NewRouter(RouterConfig{
		TrustedProxies:       []string{"127.0.0.1"},
		CORSOrigins:          []string{"http://localhost:8080"},
		ProtectContentWrites: protect,
		Tokens:               TokenConfig{Secret: testSecret, AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
	}, Deps{
		DB:       gdb,
		Admins:   env.admins,
		Messages: store.NewMessageStore(gdb),
		Content: &Content{
			Listings:       store.NewListingStore(gdb, mem),
			Gallery:        store.NewGalleryStore(gdb, mem),
			Cache:          utils.NewLocalCache(1000),
			CacheTTL:       time.Minute,
			MaxUploadBytes: 8 << 20,
		},
		Notifier: env.notifier,
	})
	require.NoError(t, err)
	env.router = router
	return env
}

// admin creates an account and returns it with an access token
func (e *testEnv) admin(email string, role domain.Role) (*domain.Admin, string) {
	e.t.Helper()
	a, err := e.admins.Create(context.Background(), store.NewAdmin{Email: email, Password: "password1", Role: role})
	require.NoError(e.t, err)
	tok, err := utils.GenerateJWT(a.ID, a.Role, utils.AccessToken, testSecret, time.Hour)
	require.NoError(e.t, err)
	return a, tok
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) json(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

// pngHeader is enough for content sniffing to see a PNG
var pngHeader = []byte("\x89PNG\r\n\x1a\n")

type upload struct {
	name string
	data []byte
}

// pngUpload is a small PNG-looking file named name
func pngUpload(name string) upload {
	return upload{name: name, data: append(append([]byte{}, pngHeader...), name...)}
}

// multipartBody encodes text fields and one PNG image part per file name
func multipartBody(t *testing.T, fields map[string]string, files ...string) (*bytes.Buffer, string) {
	t.Helper()
	uploads := make([]upload, len(files))
	for i, name := range files {
		uploads[i] = pngUpload(name)
	}
	return multipartUploads(t, fields, uploads...)
}

func multipartUploads(t *testing.T, fields map[string]string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *testEnv) multipart(method, path string, fields map[string]string, files ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	body, contentType := multipartBody(e.t, fields, files...)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	return e.do(req, "")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
