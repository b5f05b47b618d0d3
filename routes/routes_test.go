package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	config "github.com/phillip/charity-admin-go/config"
	controllers "github.com/phillip/charity-admin-go/controllers"
	middleware "github.com/phillip/charity-admin-go/middleware"
	models "github.com/phillip/charity-admin-go/models"
	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
)

type noUploads struct{}

func (noUploads) Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error) {
	return "", errors.New("uploads disabled")
}
func (noUploads) Delete(ctx context.Context, url string) error { return nil }
func (noUploads) Owns(url string) bool                         { return false }

func newRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cfg := &config.Config{CORSOrigins: []string{"https://admin.example.org"}, AdminJWTSecret: secret}
	deps := controllers.Deps{Media: uploads.NewNormalizer(noUploads{}, models.Placeholder, logger), Log: logger}

	r := gin.New()
	SetupRoutes(r, cfg, controllers.Resources(&store.Backend{}, deps), logger)
	return r
}

func serve(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_OpenWithoutSecret(t *testing.T) {
	r := newRouter("")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/impact-stats", `{"label":"Meals","value":"1k"}`, "").Code)

	w := serve(r, http.MethodGet, "/api/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"route not found"}`, w.Body.String())
}

func TestRoutes_GuardedWrites(t *testing.T) {
	r := newRouter("secret")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/events", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/events", `{}`, "").Code)

	// contact form stays public, the inbox does not
	msg := `{"name":"Asha","email":"asha@example.org","message":"hello"}`
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/messages", msg, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/messages", "", "").Code)

	token, err := middleware.GenerateAdminToken("ops", []byte("secret"), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/messages", "", token).Code)
	assert.Equal(t, http.StatusCreated,
		serve(r, http.MethodPost, "/api/impact-stats", `{"label":"Meals","value":"1k"}`, token).Code)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	r := newRouter("")
	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://admin.example.org")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}
