package middleware

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursecatalog/internal/app/views"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(views.ErrorTemplate).Parse(`{{.status}} {{.message}}`)))
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newTestRouter()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter()
	r.Use(RequestID(), RequestLogger(zerolog.New(&buf)))
	r.GET("/catalog", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	line := buf.String()
	assert.Contains(t, line, `"path":"/catalog"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"level":"info"`)
	assert.Contains(t, line, `"request_id":"`)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "decode", err: fmt.Errorf("x: %w", apperrors.ErrCatalogDecode), status: http.StatusInternalServerError, body: "could not be read"},
		{name: "io", err: fmt.Errorf("x: %w", apperrors.ErrCatalogIO), status: http.StatusInternalServerError, body: "could not be read"},
		{name: "not found", err: apperrors.NewCourseNotFoundError("1"), status: http.StatusNotFound, body: "Course not found"},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, body: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			reached := false
			r.GET("/", func(c *gin.Context) { HandleError(c, tt.err) }, func(c *gin.Context) { reached = true })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.False(t, reached)
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter()
	r.POST("/save_course", RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}), func(c *gin.Context) {
		c.Status(http.StatusFound)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save_course", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusFound, http.StatusFound, http.StatusTooManyRequests}, codes)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := newTestRouter()
	r.Use(Metrics(m))
	r.GET("/course/:code", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/course/1", "/course/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/course/:code", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
