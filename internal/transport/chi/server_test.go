package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wicara-cloud/wicara/internal/domain"
	"github.com/wicara-cloud/wicara/internal/domain/document"
)

func snbpDoc() document.Document {
	return document.Reconstruct("doc-snbp",
		"Pendaftaran SNBP",
		"SNBP adalah jalur masuk menggunakan nilai rapor. Pendaftaran dibuka Januari.",
		[]string{"snbp", "pendaftaran"},
	)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(newMemRepo(snbpDoc()), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search",
		`{"query":"Bagaimana cara daftar SNBP di UGM?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Confidence != "high" {
		t.Errorf("Confidence = %q, want high", resp.Confidence)
	}
	if resp.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", resp.Iterations)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != "doc-snbp" {
		t.Errorf("Results = %+v", resp.Results)
	}
	if resp.AgentLog != nil {
		t.Error("agent log should be omitted unless debug is requested")
	}
}

func TestSearchEndpoint_DebugLog(t *testing.T) {
	router := newTestRouter(newMemRepo(snbpDoc()), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search",
		`{"query":"daftar snbp","debug":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.AgentLog) == 0 {
		t.Error("expected the agent log in debug mode")
	}
}

func TestSearchEndpoint_StoreUnavailable(t *testing.T) {
	repo := newMemRepo(snbpDoc())
	repo.err = fmt.Errorf("scan knowledge keys: %w: %w",
		domain.ErrStoreUnavailable, errors.New("connection refused"))
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search", `{"query":"daftar snbp"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeStoreUnavailable {
		t.Errorf("code = %q, want %q", resp.Code, codeStoreUnavailable)
	}
}

func TestListDocuments_StoreUnavailable(t *testing.T) {
	repo := newMemRepo()
	repo.err = fmt.Errorf("scan knowledge keys: %w: %w",
		domain.ErrStoreUnavailable, errors.New("connection refused"))
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/knowledge", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeStoreUnavailable {
		t.Errorf("code = %q, want %q", resp.Code, codeStoreUnavailable)
	}
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeValidationFailed {
		t.Errorf("code = %q, want %q", resp.Code, codeValidationFailed)
	}
}

func TestSearchEndpoint_InvalidBody(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeBadRequest {
		t.Errorf("code = %q, want %q", resp.Code, codeBadRequest)
	}
}

func TestSearchEndpoint_TopK(t *testing.T) {
	router := newTestRouter(newMemRepo(
		document.Reconstruct("a", "SNBP Satu", "Info snbp pertama", nil),
		document.Reconstruct("b", "SNBP Dua", "Info snbp kedua", nil),
	), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/search",
		`{"query":"info snbp","top_k":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("Results length = %d, want 1", len(resp.Results))
	}
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(newMemRepo(snbpDoc()),
		&stubCompleter{answer: "Pendaftaran dibuka Januari."}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/chat",
		`{"message":"Kapan pendaftaran SNBP?","history":[{"role":"user","content":"halo"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "Pendaftaran dibuka Januari." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "Pendaftaran SNBP" {
		t.Errorf("Sources = %v", resp.Sources)
	}
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/chat", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAddDocument(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/knowledge",
		`{"title":"Judul","content":"Isi dokumen","tags":["a"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a server-assigned ID")
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/knowledge/"+resp.ID {
		t.Errorf("Location = %q", loc)
	}
	if len(repo.docs) != 1 {
		t.Errorf("repo holds %d documents, want 1", len(repo.docs))
	}
}

func TestAddDocument_ValidationFailed(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPost, "/v1/knowledge",
		`{"content":"Isi tanpa judul"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Code != codeValidationFailed {
		t.Errorf("code = %q, want %q", resp.Code, codeValidationFailed)
	}
}

func TestUpdateDocument_NotFound(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPut, "/v1/knowledge/missing",
		`{"title":"Judul","content":"Isi"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeDocumentNotFound {
		t.Errorf("code = %q, want %q", resp.Code, codeDocumentNotFound)
	}
}

func TestUpdateDocument(t *testing.T) {
	repo := newMemRepo(snbpDoc())
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodPut, "/v1/knowledge/doc-snbp",
		`{"title":"Judul Baru","content":"Isi baru"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	stored := repo.docs["doc-snbp"]
	if got := stored.Title(); got != "Judul Baru" {
		t.Errorf("stored title = %q", got)
	}
}

func TestGetDocument(t *testing.T) {
	router := newTestRouter(newMemRepo(snbpDoc()), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/knowledge/doc-snbp", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "doc-snbp" || resp.Title != "Pendaftaran SNBP" {
		t.Errorf("unexpected document: %+v", resp)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/knowledge/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	repo := newMemRepo(snbpDoc())
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodDelete, "/v1/knowledge/doc-snbp", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(repo.docs) != 0 {
		t.Error("document should be deleted")
	}
}

func TestListDocuments(t *testing.T) {
	router := newTestRouter(newMemRepo(
		document.Reconstruct("b", "B", "isi", nil),
		document.Reconstruct("a", "A", "isi", nil),
	), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/knowledge", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp documentListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Items) != 2 {
		t.Fatalf("Total = %d, Items = %d", resp.Total, len(resp.Items))
	}
	if resp.Items[0].ID != "a" || resp.Items[1].ID != "b" {
		t.Errorf("items not sorted by ID: %+v", resp.Items)
	}
}

func TestClearDocuments(t *testing.T) {
	repo := newMemRepo(snbpDoc())
	router := newTestRouter(repo, &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodDelete, "/v1/knowledge", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp clearResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", resp.Deleted)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, nil)

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("unexpected health report: %+v", resp)
	}
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	router := newTestRouter(newMemRepo(), &stubCompleter{}, errors.New("connection refused"))

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
