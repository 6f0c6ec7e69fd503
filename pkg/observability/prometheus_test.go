package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooksSearch(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheusHooks()

	p.OnSearchStart(ctx, "driving")
	p.OnSearchComplete(ctx, "driving", 3*time.Millisecond, nil)
	p.OnSearchComplete(ctx, "driving-walking", time.Millisecond, errors.New("no route"))
	p.OnRelaxation(ctx, "drop-walk")
	p.OnRelaxation(ctx, "drop-walk")

	if got := testutil.ToFloat64(p.searches.WithLabelValues("driving", "ok")); got != 1 {
		t.Errorf("driving ok searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.searches.WithLabelValues("driving-walking", "error")); got != 1 {
		t.Errorf("hybrid error searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.relaxations.WithLabelValues("drop-walk")); got != 2 {
		t.Errorf("relaxations = %v, want 2", got)
	}
}

func TestPrometheusHooksCache(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheusHooks()

	p.OnCacheHit(ctx, "route")
	p.OnCacheMiss(ctx, "route")
	p.OnCacheMiss(ctx, "route")
	p.OnCacheSet(ctx, "route", 512)

	if got := testutil.ToFloat64(p.cacheEvents.WithLabelValues("route", "miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes.WithLabelValues("route")); got != 512 {
		t.Errorf("bytes = %v, want 512", got)
	}
}

func TestPrometheusHooksHTTP(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheusHooks()

	p.OnRequest(ctx, "POST", "/v1/routes")
	if got := testutil.ToFloat64(p.httpInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	p.OnResponse(ctx, "POST", "/v1/routes", 200, time.Millisecond)
	if got := testutil.ToFloat64(p.httpInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `routeplanner_http_requests_total{method="POST",route="/v1/routes",status="200"} 1`) {
		t.Errorf("metrics output missing request counter:\n%s", body)
	}
}
