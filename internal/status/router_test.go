package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"GoldSync/internal/model"
	"GoldSync/internal/recorder"
	"GoldSync/internal/state"
)

func setupRouter(t *testing.T) (*state.Tracker, *recorder.MemoryRecorder, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tracker := state.NewTracker()
	rec := recorder.NewMemoryRecorder(5)
	return tracker, rec, NewRouter(NewHandler(tracker, rec))
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealth_BeforeFirstSync(t *testing.T) {
	_, _, router := setupRouter(t)
	rr := get(router, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["syncCount"] != float64(0) {
		t.Errorf("expected syncCount 0, got %v", body["syncCount"])
	}
	for _, k := range []string{"lastUpdate", "goldPrice"} {
		v, ok := body[k]
		if !ok || v != nil {
			t.Errorf("expected %s to be null, got %v (present=%v)", k, v, ok)
		}
	}
}

func TestHealth_AfterSync(t *testing.T) {
	tracker, _, router := setupRouter(t)
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	tracker.RecordSync(2015.75, at)

	var body struct {
		Status     string    `json:"status"`
		LastUpdate time.Time `json:"lastUpdate"`
		SyncCount  int       `json:"syncCount"`
		GoldPrice  float64   `json:"goldPrice"`
	}
	rr := get(router, "/health")
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.SyncCount != 1 || body.GoldPrice != 2015.75 || !body.LastUpdate.Equal(at) {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestLiveness_AnyOtherPath(t *testing.T) {
	_, _, router := setupRouter(t)
	for _, path := range []string{"/", "/status", "/foo/bar"} {
		rr := get(router, path)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
		}
		if rr.Body.String() != LivenessMessage {
			t.Errorf("%s: unexpected body %q", path, rr.Body.String())
		}
	}
}

func TestCycles(t *testing.T) {
	_, rec, router := setupRouter(t)

	rr := get(router, "/cycles")
	if rr.Code != http.StatusOK || rr.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", rr.Code, rr.Body.String())
	}

	rec.RecordCycle(&model.CycleResult{CycleID: "c1", Updated: 2})
	rec.RecordCycle(&model.CycleResult{CycleID: "c2", Failed: 1})

	var cycles []recorder.CycleSummary
	rr = get(router, "/cycles?limit=1")
	if err := json.Unmarshal(rr.Body.Bytes(), &cycles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cycles) != 1 || cycles[0].CycleID != "c2" {
		t.Errorf("expected newest cycle only, got %+v", cycles)
	}

	if rr := get(router, "/cycles?limit=x"); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rr.Code)
	}
}
