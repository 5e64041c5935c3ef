package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wishflow/wishflow/internal/database"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, logger).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestInvalidUserRejected(t *testing.T) {
	h := setupTestServer(t)

	rec, _ := doJSON(t, h, "GET", "/api/bad%20user/wishes", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for invalid user", rec.Code)
	}

	// 31 runes is one too many
	long := strings.Repeat("a", 31)
	rec, _ = doJSON(t, h, "GET", "/api/"+long+"/wishes", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for over-long user", rec.Code)
	}
}

func TestAttendanceDuplicateIsOK(t *testing.T) {
	h := setupTestServer(t)

	rec, src := doJSON(t, h, "POST", "/api/alice/income", map[string]any{
		"title": "Job", "daily_amount": 20,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income status = %d, want 201", rec.Code)
	}
	id := int64(src["id"].(float64))

	path := fmt.Sprintf("/api/alice/income/%d/attendance", id)
	rec, first := doJSON(t, h, "POST", path, map[string]any{"date": "2025-01-01"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first attendance status = %d, want 201", rec.Code)
	}

	rec, second := doJSON(t, h, "POST", path, map[string]any{"date": "2025-01-01"})
	if rec.Code != http.StatusOK {
		t.Fatalf("duplicate attendance status = %d, want 200", rec.Code)
	}
	if first["id"] != second["id"] {
		t.Errorf("duplicate returned a different event: %v vs %v", first["id"], second["id"])
	}
}

func TestWishLifecycleOverHTTP(t *testing.T) {
	h := setupTestServer(t)

	rec, wish := doJSON(t, h, "POST", "/api/alice/wishes", map[string]any{
		"title": "Book", "target_amount": 30, "priority": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create wish status = %d, want 201", rec.Code)
	}
	wishID := int64(wish["id"].(float64))

	// Completing a locked wish is a 404, not a transition
	rec, _ = doJSON(t, h, "POST", fmt.Sprintf("/api/alice/wishes/%d/complete", wishID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("complete locked wish status = %d, want 404", rec.Code)
	}

	// Fund alice and run the engine
	rec, src := doJSON(t, h, "POST", "/api/alice/income", map[string]any{
		"title": "Job", "daily_amount": 20,
	})
	srcID := int64(src["id"].(float64))
	doJSON(t, h, "POST", fmt.Sprintf("/api/alice/income/%d/attendance", srcID), map[string]any{"date": "2025-01-01"})
	doJSON(t, h, "POST", fmt.Sprintf("/api/alice/income/%d/attendance", srcID), map[string]any{"date": "2025-01-02"})

	rec, unlock := doJSON(t, h, "POST", "/api/alice/pool/unlock", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlock status = %d, want 200", rec.Code)
	}
	unlocked := unlock["unlocked"].([]any)
	if len(unlocked) != 1 || int64(unlocked[0].(float64)) != wishID {
		t.Fatalf("unlocked = %v, want [%d]", unlocked, wishID)
	}

	// Now completing succeeds
	rec, completed := doJSON(t, h, "POST", fmt.Sprintf("/api/alice/wishes/%d/complete", wishID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete unlocked wish status = %d, want 200", rec.Code)
	}
	if completed["status"].(float64) != 2 {
		t.Errorf("completed status = %v, want 2", completed["status"])
	}

	// Completed wishes reject edits with 404
	rec, _ = doJSON(t, h, "PUT", fmt.Sprintf("/api/alice/wishes/%d", wishID), map[string]any{
		"title": "Nope", "target_amount": 1, "priority": 0,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update completed wish status = %d, want 404", rec.Code)
	}
}

func TestPoolBalanceBreakdown(t *testing.T) {
	h := setupTestServer(t)

	rec, src := doJSON(t, h, "POST", "/api/alice/income", map[string]any{
		"title": "Job", "daily_amount": 20,
	})
	srcID := int64(src["id"].(float64))
	doJSON(t, h, "POST", fmt.Sprintf("/api/alice/income/%d/attendance", srcID), map[string]any{"date": "2025-01-01"})

	rec, pool := doJSON(t, h, "GET", "/api/alice/pool", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pool status = %d, want 200", rec.Code)
	}
	if pool["balance"].(string) != "20" {
		t.Errorf("balance = %v, want \"20\"", pool["balance"])
	}
	if pool["earned"].(string) != "20" || pool["committed"].(string) != "0" {
		t.Errorf("breakdown = earned %v committed %v, want 20 and 0", pool["earned"], pool["committed"])
	}
}

func TestCrossUserLooksMissing(t *testing.T) {
	h := setupTestServer(t)

	_, wish := doJSON(t, h, "POST", "/api/alice/wishes", map[string]any{
		"title": "Book", "target_amount": 30, "priority": 1,
	})
	wishID := int64(wish["id"].(float64))

	// Bob poking alice's wish gets the same 404 a missing id would give
	rec, _ := doJSON(t, h, "PUT", fmt.Sprintf("/api/bob/wishes/%d", wishID), map[string]any{
		"title": "Mine now", "target_amount": 1, "priority": 0,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", rec.Code)
	}
	rec, _ = doJSON(t, h, "PUT", "/api/bob/wishes/424242", map[string]any{
		"title": "Ghost", "target_amount": 1, "priority": 0,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing wish update status = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := setupTestServer(t)

	rec, _ := doJSON(t, h, "GET", "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}
