package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"load not found"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ResultsResponse wraps a listing; the dashboard reads the results key
// @Description Listing response
type ResultsResponse struct {
	Results any `json:"results"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhookTest godoc
// @Summary      Webhook liveness
// @Description  Confirms the extraction webhook endpoint is reachable
// @Tags         Webhook
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /webhook/test [get]
func (s *Server) handleWebhookTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "webhook endpoint active",
	})
}

// Load endpoints

// handleListLoads godoc
// @Summary      List loads
// @Description  List loads matching every supplied filter. Omitting status shows only available loads; pass an empty status to see all statuses.
// @Tags         Loads
// @Produce      json
// @Security     APIKeyAuth
// @Param        origin          query  string  false  "Origin substring, case-insensitive"
// @Param        destination     query  string  false  "Destination substring, case-insensitive"
// @Param        equipment_type  query  string  false  "Equipment type, case-insensitive exact"
// @Param        status          query  string  false  "Load status; defaults to available, empty for all"
// @Param        min_weight      query  number  false  "Inclusive lower weight bound"
// @Param        max_weight      query  number  false  "Inclusive upper weight bound"
// @Param        price_min       query  number  false  "Inclusive lower rate bound"
// @Param        price_max       query  number  false  "Inclusive upper rate bound"
// @Param        min_rate        query  int     false  "Inclusive lower rate bound"
// @Param        pickup_from     query  string  false  "Inclusive ISO-8601 lower pickup bound"
// @Param        pickup_to       query  string  false  "Inclusive ISO-8601 upper pickup bound"
// @Param        limit           query  int     false  "Page size, clamped to [1,200]"
// @Param        offset          query  int     false  "Page offset"
// @Success      200  {object}  ResultsResponse
// @Failure      400  {object}  ErrorResponse  "Malformed filter value"
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /loads [get]
func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := driving.ListLoadsRequest{
		Filter: domain.LoadFilter{
			Origin:        queryString(q, "origin"),
			Destination:   queryString(q, "destination"),
			EquipmentType: queryString(q, "equipment_type"),
			Status:        queryString(q, "status"),
			PickupFrom:    queryString(q, "pickup_from"),
			PickupTo:      queryString(q, "pickup_to"),
		},
	}

	var err error
	if req.Filter.MinWeight, err = queryFloat(q, "min_weight"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filter.MaxWeight, err = queryFloat(q, "max_weight"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filter.PriceMin, err = queryFloat(q, "price_min"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filter.PriceMax, err = queryFloat(q, "price_max"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filter.MinRate, err = queryInt(q, "min_rate"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Limit, err = queryInt(q, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Offset, err = queryInt(q, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loads, err := s.loadService.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list loads")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": loads})
}

// handleGetLoad godoc
// @Summary      Get load
// @Description  Get a load by its id
// @Tags         Loads
// @Produce      json
// @Security     APIKeyAuth
// @Param        id   path      string  true  "Load ID"
// @Success      200  {object}  domain.Load
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      404  {object}  ErrorResponse  "Load not found"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /loads/{id} [get]
func (s *Server) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	load, err := s.loadService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "load not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get load")
		return
	}

	writeJSON(w, http.StatusOK, load)
}

// handleCreateLoad godoc
// @Summary      Create load
// @Description  Store a new load listing. Duplicate load ids are rejected, never overwritten.
// @Tags         Loads
// @Accept       json
// @Produce      json
// @Security     APIKeyAuth
// @Param        request  body      domain.Load  true  "Load to create"
// @Success      201      {object}  domain.Load
// @Failure      400      {object}  ErrorResponse  "Invalid body or duplicate load id"
// @Failure      401      {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      500      {object}  ErrorResponse  "Storage failure"
// @Router       /loads [post]
func (s *Server) handleCreateLoad(w http.ResponseWriter, r *http.Request) {
	var load domain.Load
	if err := json.NewDecoder(r.Body).Decode(&load); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.loadService.Create(r.Context(), &load)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "load with this id already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create load")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleReplaceLoad godoc
// @Summary      Replace load
// @Description  Overwrite an existing load in full. There are no partial updates.
// @Tags         Loads
// @Accept       json
// @Produce      json
// @Security     APIKeyAuth
// @Param        id       path      string       true  "Load ID"
// @Param        request  body      domain.Load  true  "Replacement record"
// @Success      200      {object}  domain.Load
// @Failure      400      {object}  ErrorResponse  "Invalid body"
// @Failure      401      {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      404      {object}  ErrorResponse  "Load not found"
// @Failure      500      {object}  ErrorResponse  "Storage failure"
// @Router       /loads/{id} [put]
func (s *Server) handleReplaceLoad(w http.ResponseWriter, r *http.Request) {
	var load domain.Load
	if err := json.NewDecoder(r.Body).Decode(&load); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	replaced, err := s.loadService.Replace(r.Context(), r.PathValue("id"), &load)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "load not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to replace load")
		}
		return
	}

	writeJSON(w, http.StatusOK, replaced)
}

// handleDeleteLoad godoc
// @Summary      Delete load
// @Description  Delete a load by its id
// @Tags         Loads
// @Produce      json
// @Security     APIKeyAuth
// @Param        id   path      string  true  "Load ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      404  {object}  ErrorResponse  "Load not found"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /loads/{id} [delete]
func (s *Server) handleDeleteLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.loadService.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "load not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete load")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Conversation endpoints

// handleListConversations godoc
// @Summary      List conversations
// @Description  List conversations matching every supplied filter, newest first
// @Tags         Conversations
// @Produce      json
// @Security     APIKeyAuth
// @Param        customer          query  string  false  "Customer name substring, case-insensitive"
// @Param        priority          query  string  false  "Priority, case-insensitive exact"
// @Param        follow_up_needed  query  bool    false  "Follow-up flag, strict equality"
// @Param        limit             query  int     false  "Page size, clamped to [1,200]"
// @Param        offset            query  int     false  "Page offset"
// @Success      200  {object}  ResultsResponse
// @Failure      400  {object}  ErrorResponse  "Malformed filter value"
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /conversations [get]
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := driving.ListConversationsRequest{
		Filter: domain.ConversationFilter{
			Customer: queryString(q, "customer"),
			Priority: queryString(q, "priority"),
		},
	}

	var err error
	if req.Filter.FollowUp, err = queryBool(q, "follow_up_needed"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Limit, err = queryInt(q, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Offset, err = queryInt(q, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	convs, err := s.conversationService.List(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": convs})
}

// handleGetConversation godoc
// @Summary      Get conversation
// @Description  Get a conversation by its id
// @Tags         Conversations
// @Produce      json
// @Security     APIKeyAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  domain.Conversation
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      404  {object}  ErrorResponse  "Conversation not found"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /conversations/{id} [get]
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.conversationService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get conversation")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// handleCreateConversation godoc
// @Summary      Create conversation
// @Description  Store a new conversation record. Duplicate ids are rejected; the timestamp defaults to now when absent.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Security     APIKeyAuth
// @Param        request  body      domain.Conversation  true  "Conversation to create"
// @Success      201      {object}  domain.Conversation
// @Failure      400      {object}  ErrorResponse  "Invalid body or duplicate conversation id"
// @Failure      401      {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      500      {object}  ErrorResponse  "Storage failure"
// @Router       /conversations [post]
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var conv domain.Conversation
	if err := json.NewDecoder(r.Body).Decode(&conv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.conversationService.Create(r.Context(), &conv)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "conversation with this id already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create conversation")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleDeleteConversation godoc
// @Summary      Delete conversation
// @Description  Delete a conversation by its id
// @Tags         Conversations
// @Produce      json
// @Security     APIKeyAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      404  {object}  ErrorResponse  "Conversation not found"
// @Failure      500  {object}  ErrorResponse  "Storage failure"
// @Router       /conversations/{id} [delete]
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.conversationService.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Webhook endpoints

// handleWebhookExtraction godoc
// @Summary      Ingest extraction payload
// @Description  Normalize an extraction payload from the external call-analysis system into a conversation record, upserting by the derived call id.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Security     APIKeyAuth
// @Param        request  body      domain.ExtractionPayload  true  "Extraction payload"
// @Success      200      {object}  driving.IngestResult
// @Failure      400      {object}  ErrorResponse  "Malformed payload shape"
// @Failure      401      {object}  ErrorResponse  "Invalid or missing API key"
// @Failure      500      {object}  ErrorResponse  "Storage failure"
// @Router       /webhook/extraction [post]
func (s *Server) handleWebhookExtraction(w http.ResponseWriter, r *http.Request) {
	var payload domain.ExtractionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.ingestService.Ingest(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to ingest payload")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":          "success",
		"action":          result.Action,
		"conversation_id": result.ConversationID,
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// queryString returns a pointer to the parameter value, or nil when the
// caller omitted the parameter entirely. Present-but-empty yields a
// pointer to "" so handlers can tell the two apart (the status default
// depends on that distinction).
func queryString(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

func queryInt(q url.Values, key string) (*int, error) {
	if !q.Has(key) || q.Get(key) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &v, nil
}

func queryFloat(q url.Values, key string) (*float64, error) {
	if !q.Has(key) || q.Get(key) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return nil, errors.New(key + " must be a number")
	}
	return &v, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	if !q.Has(key) || q.Get(key) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil, errors.New(key + " must be true or false")
	}
	return &v, nil
}
