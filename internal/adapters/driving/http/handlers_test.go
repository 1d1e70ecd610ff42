package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

const testAPIKey = "test-secret"

// Function-field mocks keep each test focused on the handler under test

type mockLoadService struct {
	listFunc    func(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error)
	getFunc     func(ctx context.Context, id string) (*domain.Load, error)
	createFunc  func(ctx context.Context, load *domain.Load) (*domain.Load, error)
	replaceFunc func(ctx context.Context, id string, load *domain.Load) (*domain.Load, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockLoadService) List(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
	return m.listFunc(ctx, req)
}

func (m *mockLoadService) Get(ctx context.Context, id string) (*domain.Load, error) {
	return m.getFunc(ctx, id)
}

func (m *mockLoadService) Create(ctx context.Context, load *domain.Load) (*domain.Load, error) {
	return m.createFunc(ctx, load)
}

func (m *mockLoadService) Replace(ctx context.Context, id string, load *domain.Load) (*domain.Load, error) {
	return m.replaceFunc(ctx, id, load)
}

func (m *mockLoadService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

type mockConversationService struct {
	listFunc   func(ctx context.Context, req driving.ListConversationsRequest) ([]*domain.Conversation, error)
	getFunc    func(ctx context.Context, id string) (*domain.Conversation, error)
	createFunc func(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockConversationService) List(ctx context.Context, req driving.ListConversationsRequest) ([]*domain.Conversation, error) {
	return m.listFunc(ctx, req)
}

func (m *mockConversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	return m.getFunc(ctx, id)
}

func (m *mockConversationService) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	return m.createFunc(ctx, conv)
}

func (m *mockConversationService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

type mockIngestService struct {
	ingestFunc func(ctx context.Context, payload domain.ExtractionPayload) (*driving.IngestResult, error)
}

func (m *mockIngestService) Ingest(ctx context.Context, payload domain.ExtractionPayload) (*driving.IngestResult, error) {
	return m.ingestFunc(ctx, payload)
}

func newTestServer(loads driving.LoadService, convs driving.ConversationService, ingest driving.IngestService) *Server {
	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	return NewServer(cfg, zap.NewNop(), loads, convs, ingest)
}

func doRequest(s *Server, method, target, body string, withKey bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if withKey {
		req.Header.Set(APIKeyHeader, testAPIKey)
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuth(t *testing.T) {
	s := newTestServer(
		&mockLoadService{listFunc: func(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
			return nil, nil
		}},
		nil, nil,
	)

	tests := []struct {
		name       string
		target     string
		withKey    bool
		wantStatus int
	}{
		{"loads without key", "/loads", false, http.StatusUnauthorized},
		{"loads with key", "/loads", true, http.StatusOK},
		{"health needs no key", "/health", false, http.StatusOK},
		{"webhook test needs no key", "/webhook/test", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.target, "", tt.withKey)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuth_WrongKey(t *testing.T) {
	s := newTestServer(&mockLoadService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/loads", nil)
	req.Header.Set(APIKeyHeader, "wrong-key")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != domain.ErrUnauthorized.Error() {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHandleListLoads_QueryParsing(t *testing.T) {
	var captured driving.ListLoadsRequest
	s := newTestServer(
		&mockLoadService{listFunc: func(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
			captured = req
			return []*domain.Load{{LoadID: "L1"}}, nil
		}},
		nil, nil,
	)

	rec := doRequest(s, http.MethodGet,
		"/loads?origin=Dallas&status=&min_weight=5000&min_rate=2000&limit=10&offset=5", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if captured.Filter.Origin == nil || *captured.Filter.Origin != "Dallas" {
		t.Errorf("origin not parsed: %v", captured.Filter.Origin)
	}
	// status= present but empty must reach the service as an empty-string
	// pointer, not nil, to suppress the available-only default
	if captured.Filter.Status == nil || *captured.Filter.Status != "" {
		t.Errorf("empty status should parse to pointer-to-empty, got %v", captured.Filter.Status)
	}
	if captured.Filter.MinWeight == nil || *captured.Filter.MinWeight != 5000 {
		t.Errorf("min_weight not parsed: %v", captured.Filter.MinWeight)
	}
	if captured.Filter.MinRate == nil || *captured.Filter.MinRate != 2000 {
		t.Errorf("min_rate not parsed: %v", captured.Filter.MinRate)
	}
	if captured.Limit == nil || *captured.Limit != 10 {
		t.Errorf("limit not parsed: %v", captured.Limit)
	}
	if captured.Offset == nil || *captured.Offset != 5 {
		t.Errorf("offset not parsed: %v", captured.Offset)
	}

	body := decodeBody(t, rec)
	if _, ok := body["results"]; !ok {
		t.Error("expected results key in listing response")
	}
}

func TestHandleListLoads_OmittedStatusIsNil(t *testing.T) {
	var captured driving.ListLoadsRequest
	s := newTestServer(
		&mockLoadService{listFunc: func(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
			captured = req
			return nil, nil
		}},
		nil, nil,
	)

	if rec := doRequest(s, http.MethodGet, "/loads", "", true); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.Filter.Status != nil {
		t.Errorf("omitted status should parse to nil, got %q", *captured.Filter.Status)
	}
}

func TestHandleListLoads_BadValues(t *testing.T) {
	s := newTestServer(
		&mockLoadService{listFunc: func(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
			return nil, domain.ErrInvalidInput
		}},
		nil, nil,
	)

	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric limit", "/loads?limit=abc"},
		{"non-numeric min_weight", "/loads?min_weight=heavy"},
		{"non-numeric min_rate", "/loads?min_rate=2k"},
		{"bad date bound surfaces from the service", "/loads?pickup_from=not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.target, "", true)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleGetLoad(t *testing.T) {
	s := newTestServer(
		&mockLoadService{getFunc: func(ctx context.Context, id string) (*domain.Load, error) {
			if id == "L1" {
				return &domain.Load{LoadID: "L1", Origin: "Dallas, TX"}, nil
			}
			return nil, domain.ErrNotFound
		}},
		nil, nil,
	)

	rec := doRequest(s, http.MethodGet, "/loads/L1", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["load_id"] != "L1" {
		t.Errorf("unexpected body: %v", body)
	}

	rec = doRequest(s, http.MethodGet, "/loads/missing", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "load not found" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHandleCreateLoad(t *testing.T) {
	s := newTestServer(
		&mockLoadService{createFunc: func(ctx context.Context, load *domain.Load) (*domain.Load, error) {
			if load.LoadID == "dup" {
				return nil, domain.ErrAlreadyExists
			}
			load.Status = domain.StatusAvailable
			return load, nil
		}},
		nil, nil,
	)

	rec := doRequest(s, http.MethodPost, "/loads",
		`{"load_id":"L1","origin":"Dallas, TX","destination":"Miami, FL"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["status"] != "available" {
		t.Errorf("expected defaulted status in response, got %v", body["status"])
	}

	rec = doRequest(s, http.MethodPost, "/loads", `{"load_id":"dup"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "load with this id already exists" {
		t.Errorf("unexpected error message: %v", body["error"])
	}

	rec = doRequest(s, http.MethodPost, "/loads", `{not json`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed body", rec.Code)
	}
}

func TestHandleDeleteLoad(t *testing.T) {
	s := newTestServer(
		&mockLoadService{deleteFunc: func(ctx context.Context, id string) error {
			if id == "L1" {
				return nil
			}
			return domain.ErrNotFound
		}},
		nil, nil,
	)

	rec := doRequest(s, http.MethodDelete, "/loads/L1", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "deleted" {
		t.Errorf("unexpected body: %v", body)
	}

	if rec := doRequest(s, http.MethodDelete, "/loads/missing", "", true); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleListConversations(t *testing.T) {
	var captured driving.ListConversationsRequest
	s := newTestServer(nil,
		&mockConversationService{listFunc: func(ctx context.Context, req driving.ListConversationsRequest) ([]*domain.Conversation, error) {
			captured = req
			return []*domain.Conversation{{ConversationID: "conv_001"}}, nil
		}},
		nil,
	)

	rec := doRequest(s, http.MethodGet, "/conversations?customer=Smith&follow_up_needed=true", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if captured.Filter.Customer == nil || *captured.Filter.Customer != "Smith" {
		t.Errorf("customer not parsed: %v", captured.Filter.Customer)
	}
	if captured.Filter.FollowUp == nil || !*captured.Filter.FollowUp {
		t.Errorf("follow_up_needed not parsed: %v", captured.Filter.FollowUp)
	}

	if rec := doRequest(s, http.MethodGet, "/conversations?follow_up_needed=maybe", "", true); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-boolean flag", rec.Code)
	}
}

func TestHandleWebhookExtraction(t *testing.T) {
	action := driving.ActionCreated
	s := newTestServer(nil, nil,
		&mockIngestService{ingestFunc: func(ctx context.Context, payload domain.ExtractionPayload) (*driving.IngestResult, error) {
			return &driving.IngestResult{ConversationID: payload.CallID, Action: action}, nil
		}},
	)

	rec := doRequest(s, http.MethodPost, "/webhook/extraction",
		`{"call_id":"call_123","transcript":"Need a reefer ASAP"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" || body["action"] != "created" || body["conversation_id"] != "call_123" {
		t.Errorf("unexpected body: %v", body)
	}

	// Redelivery reports updated, still 200
	action = driving.ActionUpdated
	rec = doRequest(s, http.MethodPost, "/webhook/extraction", `{"call_id":"call_123"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["action"] != "updated" {
		t.Errorf("unexpected action: %v", body["action"])
	}

	if rec := doRequest(s, http.MethodPost, "/webhook/extraction", `{not json`, true); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed payload", rec.Code)
	}

	if rec := doRequest(s, http.MethodPost, "/webhook/extraction", `{"call_id":"x"}`, false); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without key", rec.Code)
	}
}

func TestHandleWebhookTest(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rec := doRequest(s, http.MethodGet, "/webhook/test", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" || body["message"] != "webhook endpoint active" {
		t.Errorf("unexpected body: %v", body)
	}
}
