package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/staragarcia/routeplanner/pkg/observability"
	"github.com/staragarcia/routeplanner/pkg/planner"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// newTestServer serves a three-location network: roads 1-2 (drive 4,
// walk 10) and 2-3 (drive 5, walk 3), with parking at 2.
func newTestServer(t *testing.T) (*httptest.Server, *observability.PrometheusHooks) {
	t.Helper()
	g := roadmap.New[int]()
	for id := 1; id <= 3; id++ {
		if err := g.AddVertex(roadmap.Vertex[int]{ID: id, Code: strings.Repeat("L", id), Parking: id == 2}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddRoad(1, 2, 4, 10); err != nil {
		t.Fatal(err)
	}
	if err := g.AddRoad(2, 3, 5, 3); err != nil {
		t.Fatal(err)
	}

	hooks := observability.NewPrometheusHooks()
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := New(planner.NewPlanner(g, nil, nil, nil), nil, hooks.Handler())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, hooks
}

func postRoute(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/routes", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPlanRoute(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postRoute(t, ts, `{"mode":"driving-walking","source":1,"destination":3}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want a UUID", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}

	var report planner.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Best == nil || !slices.Equal(report.Best.Path, []int{1, 2, 3}) || report.Best.Cost != 7 {
		t.Errorf("best = %+v, want [1 2 3] total 7", report.Best)
	}
	if report.Best.Parking == nil || *report.Best.Parking != 2 {
		t.Errorf("parking = %v, want 2", report.Best.Parking)
	}
}

func TestPlanRouteErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"mode":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"mode":"driving","source":1,"destination":3,"speed":9}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad mode", `{"mode":"flying","source":1,"destination":3}`, http.StatusBadRequest, "INVALID_MODE"},
		{"unknown vertex", `{"mode":"driving","source":1,"destination":42}`, http.StatusNotFound, "VERTEX_NOT_FOUND"},
		{"avoid source", `{"mode":"driving","source":1,"destination":3,"avoid_nodes":[1]}`, http.StatusBadRequest, "INVALID_AVOID_LIST"},
		{"no route", `{"mode":"driving","source":1,"destination":3,"avoid_nodes":[2]}`, http.StatusUnprocessableEntity, "NO_ROUTE"},
	}
	ts, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRoute(t, ts, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("body request id %q != header %q", body.Error.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestRequestIDEcho(t *testing.T) {
	ts, _ := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid request id was echoed back")
	}
}

func TestGetVertex(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/vertices/2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var v vertexResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.ID != 2 || v.Code != "LL" || !v.Parking || v.Outgoing != 2 || v.Incoming != 2 {
		t.Errorf("vertex = %+v", v)
	}

	for path, want := range map[string]int{
		"/v1/vertices/99":  http.StatusNotFound,
		"/v1/vertices/abc": http.StatusBadRequest,
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("GET %s = %d, want %d", path, resp.StatusCode, want)
		}
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Vertices != 3 || h.Edges != 4 || h.Parking != 1 || len(h.Graph) != 64 {
		t.Errorf("health = %+v", h)
	}
}

func TestMetrics(t *testing.T) {
	ts, hooks := newTestServer(t)

	postRoute(t, ts, `{"mode":"driving","source":1,"destination":3}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /metrics = %d", resp.StatusCode)
	}

	n, err := testutil.GatherAndCount(hooks.Registry(), "routeplanner_http_requests_total")
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Error("no http request metrics recorded")
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
