package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	models "github.com/phillip/charity-admin-go/models"
	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
)

type fakeProvider struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
	budgets []time.Duration
	err     error
}

func (f *fakeProvider) Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, folder+"/"+filename)
	return "https://media.test/" + folder + "/" + filename, nil
}

func (f *fakeProvider) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, url)
	if deadline, ok := ctx.Deadline(); ok {
		f.budgets = append(f.budgets, time.Until(deadline))
	}
	return nil
}

func (f *fakeProvider) Owns(url string) bool { return strings.HasPrefix(url, "https://media.test/") }

type testServer struct {
	router   *gin.Engine
	provider *fakeProvider
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := &fakeProvider{}
	deps := Deps{
		Media:            uploads.NewNormalizer(p, models.Placeholder, zap.NewNop()),
		Log:              zap.NewNop(),
		StrictCategories: strict,
	}
	r := gin.New()
	api := r.Group("/api")
	resources := Resources(&store.Backend{}, deps)
	for _, res := range resources {
		res.Register(api, func(c *gin.Context) { c.Next() })
	}
	r.GET("/healthz", Health(resources))
	return &testServer{router: r, provider: p}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) json(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

type upload struct {
	field, name, body string
}

func (s *testServer) multipart(t *testing.T, method, path string, fields map[string]string, files ...upload) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(t, req)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

var errProviderDown = errors.New("provider unavailable")
