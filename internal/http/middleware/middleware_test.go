package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/redmane-backend/internal/observability"
	"github.com/yungbote/redmane-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextKeepsSaneClientIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/projects/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/projects/", nil)
	req.Header.Set(headerRequestID, "tracker-run-42")
	req.Header.Set(headerTraceID, strings.Repeat("x", maxClientIDLen+1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil || seen.RequestID != "tracker-run-42" {
		t.Fatalf("request id not kept: %+v", seen)
	}
	if seen.TraceID == "" || len(seen.TraceID) > maxClientIDLen {
		t.Fatalf("oversized trace id should be replaced: %q", seen.TraceID)
	}
	if got := rec.Header().Get(headerTraceID); got != seen.TraceID {
		t.Fatalf("trace header: got=%q want=%q", got, seen.TraceID)
	}
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics(nil)
	r := gin.New()
	r.Use(Metrics(m, "/metrics"))
	r.GET("/samples/:sample_id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/samples/1", "/samples/2", "/metrics", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	reg := m.Registry()
	if n, err := testutil.GatherAndCount(reg, "redmane_api_requests_total"); err != nil || n != 2 {
		t.Fatalf("series count: got=%d err=%v want=2", n, err)
	}
}
