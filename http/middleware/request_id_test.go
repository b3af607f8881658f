package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type fixedUID struct {
	id  uint64
	err error
}

func (u fixedUID) NewUID(ctx context.Context) (uint64, error) {
	return u.id, u.err
}

func newTestEngine(uid fixedUID, out *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	eng := gin.New()
	eng.Use(NewRequestID(uid, zerolog.New(out)), NewAccessLog)
	eng.GET("/video", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestIDFromContext(c))
	})

	return eng
}

func TestRequestIDGenerated(t *testing.T) {
	var out bytes.Buffer
	eng := newTestEngine(fixedUID{id: 42}, &out)

	rec := httptest.NewRecorder()
	eng.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/video?id=abc123", nil))

	if rec.Header().Get("X-Request-Id") != "42" {
		t.Errorf("expected generated id 42, got %q", rec.Header().Get("X-Request-Id"))
	}
	if rec.Body.String() != "42" {
		t.Errorf("expected id on the gin context, got %q", rec.Body.String())
	}

	logLine := out.String()
	if !strings.Contains(logLine, `"request_id":"42"`) || !strings.Contains(logLine, `"status":200`) {
		t.Errorf("unexpected access log %s", logLine)
	}
}

func TestRequestIDFromHeader(t *testing.T) {
	var out bytes.Buffer
	eng := newTestEngine(fixedUID{err: errors.New("should not be called")}, &out)

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	req.Header.Set("X-Request-Id", "upstream-1")

	rec := httptest.NewRecorder()
	eng.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "upstream-1" {
		t.Errorf("expected inbound id to be kept, got %q", rec.Header().Get("X-Request-Id"))
	}
}
