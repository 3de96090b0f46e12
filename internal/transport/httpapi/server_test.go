package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mentorhub/contextd/internal/cache"
	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/internal/service/bizcontext"
	"github.com/mentorhub/contextd/internal/service/memory"
	"github.com/mentorhub/contextd/internal/service/relevance"
)

type fakeRepo struct {
	records map[string][]core.MemoryRecord
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string][]core.MemoryRecord), nextID: 1}
}

func (r *fakeRepo) Add(ctx context.Context, rec core.MemoryRecord) (int64, error) {
	rec.ID = r.nextID
	r.nextID++
	r.records[rec.TenantID] = append([]core.MemoryRecord{rec}, r.records[rec.TenantID]...)
	return rec.ID, nil
}

func (r *fakeRepo) SoftDelete(ctx context.Context, tenantID string, id int64) error {
	recs := r.records[tenantID]
	for i, rec := range recs {
		if rec.ID == id {
			r.records[tenantID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *fakeRepo) GetRecent(ctx context.Context, tenantID string, limit int) ([]core.MemoryRecord, error) {
	recs := r.records[tenantID]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func newTestServer(t *testing.T) (*Server, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	ttl := cache.NewTTLCache(time.Minute)
	builder := bizcontext.NewBuilder(repo, ttl, nil, nil)
	scorer := relevance.NewScorer(relevance.DefaultTables())
	manager := memory.NewManager(repo, builder)
	return NewServer(context.Background(), ":0", builder, scorer, manager), repo
}

func TestGetContext(t *testing.T) {
	srv, repo := newTestServer(t)
	_, _ = repo.Add(context.Background(), core.MemoryRecord{
		TenantID: "t1",
		Type:     core.MemoryClientContext,
		Content:  "Klijent vodi agenciju",
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tenants/t1/context", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Klijent vodi agenciju") {
		t.Errorf("body missing record content: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
}

func TestGetContextEmptyTenant(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tenants/nobody/context", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestGetContextHTMLFormat(t *testing.T) {
	srv, repo := newTestServer(t)
	_, _ = repo.Add(context.Background(), core.MemoryRecord{
		TenantID: "t1",
		Type:     core.MemoryClientContext,
		Content:  "Cilj je rast prihoda",
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tenants/t1/context?format=html", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Cilj je rast prihoda") {
		t.Errorf("html body missing record content: %q", rec.Body.String())
	}
}

func TestAddMemoryInvalidatesContext(t *testing.T) {
	srv, repo := newTestServer(t)
	_, _ = repo.Add(context.Background(), core.MemoryRecord{
		TenantID: "t1",
		Type:     core.MemoryClientContext,
		Content:  "stara cinjenica",
	})

	// Prime the cache.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tenants/t1/context", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("prime status = %d", rec.Code)
	}

	body := strings.NewReader(`{"type":"FACTUAL_STATEMENT","content":"nova cinjenica"}`)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/tenants/t1/memories", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("post status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created["id"] == 0 {
		t.Error("response missing created id")
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tenants/t1/context", nil))
	if !strings.Contains(rec.Body.String(), "nova cinjenica") {
		t.Errorf("context not rebuilt after write: %q", rec.Body.String())
	}
}

func TestAddMemoryRejectsEmptyContent(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.NewReader(`{"content":"<p>   </p>"}`)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/tenants/t1/memories", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteMemory(t *testing.T) {
	srv, repo := newTestServer(t)
	id, _ := repo.Add(context.Background(), core.MemoryRecord{
		TenantID: "t1",
		Type:     core.MemoryClientContext,
		Content:  "za brisanje",
	})
	path := fmt.Sprintf("/v1/tenants/t1/memories/%d", id)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestDeleteMemoryBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/tenants/t1/memories/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScoreEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.NewReader(`{"category":"Uvod u Poslovanje","role":"TENANT_OWNER"}`)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/relevance/score", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp scoreResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Score != 1.0 {
		t.Errorf("foundation category score = %v, want 1.0", resp.Score)
	}
	if resp.Threshold != 0.15 {
		t.Errorf("owner threshold = %v, want 0.15", resp.Threshold)
	}
	if !resp.Relevant {
		t.Error("foundation category should always be relevant")
	}
}

func TestScoreRequiresCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/relevance/score", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestThresholdEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		role string
		want float64
	}{
		{core.RoleTenantOwner, 0.15},
		{"MEMBER", 0.30},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/relevance/threshold/"+tc.role, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("role %s: status = %d", tc.role, rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got := resp["threshold"].(float64); got != tc.want {
			t.Errorf("threshold(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
