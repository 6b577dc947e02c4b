package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respRig returns an engine that stamps a request id and captures the
// request-scoped logger output. Routes are registered by the caller.
func respRig() (*gin.Engine, *bytes.Buffer) {
	gin.SetMode(gin.TestMode)
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-resp")
		c.Set("logger", &logger)
		c.Next()
	})
	return r, buf
}

func TestFail_ServerErrorIsLogged(t *testing.T) {
	r, buf := respRig()
	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	er := decodeError(t, w)
	if er.RequestID != "rid-resp" || er.Code != ErrCodeInternal || er.Message != "kaboom" {
		t.Fatalf("envelope: %+v", er)
	}
	logged := buf.String()
	if !strings.Contains(logged, `"level":"error"`) || !strings.Contains(logged, "api error") {
		t.Fatalf("expected error-level log, got: %s", logged)
	}
}

func TestFail_ClientErrorIsSilent(t *testing.T) {
	r, buf := respRig()
	r.GET("/nope", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "buyer not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	er := decodeError(t, w)
	if er.RequestID != "rid-resp" || er.Code != ErrCodeNotFound || er.Message != "buyer not found" {
		t.Fatalf("envelope: %+v", er)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx must not log, got: %s", buf.String())
	}
}

func TestFail_OmitsRequestIDWhenUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "bad input")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, present := raw["request_id"]; present {
		t.Fatalf("request_id should be omitted when no id was stamped: %v", raw)
	}
}

func TestSuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/created", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"n": 1}) })
	r.DELETE("/gone", func(c *gin.Context) { noContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/created", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("ok status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if int(body["n"].(float64)) != 1 {
		t.Fatalf("ok body: %#v", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gone", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent: status=%d len=%d", w.Code, w.Body.Len())
	}
}
