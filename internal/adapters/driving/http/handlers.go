package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// maxRequestBodyBytes caps inbound JSON bodies
const maxRequestBodyBytes = 1 << 20

// readinessTimeout bounds each dependency ping in /ready
const readinessTimeout = 2 * time.Second

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"Your question is out of scope. Please ask a question related to personal finance, expense management, or Islamic finance."`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// ComponentHealth represents the health of a single dependency
type ComponentHealth struct {
	Status string `json:"status" example:"healthy"`
	Detail string `json:"detail,omitempty" example:"12 documents"`
}

// HealthResponse represents the readiness report
// @Description Readiness report with per-dependency status
type HealthResponse struct {
	Status     string                     `json:"status" example:"ready"`
	Components map[string]ComponentHealth `json:"components"`
}

// MessagesRequest carries messages for replace and append
// @Description Conversation messages
type MessagesRequest struct {
	Messages []domain.Message `json:"messages"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the liveness status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings the configured conversation backends and reports the loaded document count
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:     "ready",
		Components: map[string]ComponentHealth{},
	}

	if s.documents != nil {
		resp.Components["documents"] = ComponentHealth{
			Status: "healthy",
			Detail: fmt.Sprintf("%d documents", s.documents.Len()),
		}
	}

	status := http.StatusOK
	for name, p := range map[string]Pinger{"postgres": s.db, "redis": s.redisClient} {
		if p == nil {
			continue
		}
		if err := s.ping(r.Context(), p); err != nil {
			s.logger.Warn("readiness check failed", "component", name, "error", err)
			resp.Components[name] = ComponentHealth{Status: "unhealthy", Detail: err.Error()}
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[name] = ComponentHealth{Status: "healthy"}
	}

	writeJSON(w, status, resp)
}

func (s *Server) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	return p.Ping(ctx)
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleSwaggerDoc serves the registered OpenAPI document
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Chat endpoint

// handleChat godoc
// @Summary      Ask the finance assistant
// @Description  Filters the question by topic, grounds it in matching reference documents and returns the model's answer
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ChatRequest  true  "Question and prior conversation"
// @Success      200      {object}  domain.ChatResult
// @Failure      400      {object}  ErrorResponse  "Malformed body or question out of scope"
// @Failure      405      {string}  string         "Method not allowed"
// @Failure      500      {object}  ErrorResponse  "Completion failed"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = fmt.Fprintf(w, "Method %s Not Allowed", r.Method)
		return
	}

	var req domain.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.chatService.Chat(r.Context(), req)
	if err != nil {
		var chatErr *domain.ChatError
		if errors.As(err, &chatErr) && chatErr.Kind == domain.ErrorKindScopeViolation {
			writeError(w, http.StatusBadRequest, chatErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, domain.UpstreamErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Conversation endpoints

// handleCreateConversation godoc
// @Summary      Start a conversation
// @Description  Creates an empty saved conversation and returns its ID
// @Tags         Conversations
// @Produce      json
// @Success      201  {object}  domain.Conversation
// @Failure      500  {object}  ErrorResponse
// @Router       /conversations [post]
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.conversationService.Create(r.Context())
	if err != nil {
		s.writeConversationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// handleGetConversation godoc
// @Summary      Load a conversation
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  domain.Conversation
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /conversations/{id} [get]
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.conversationService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeConversationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// handleReplaceConversation godoc
// @Summary      Save a conversation
// @Description  Replaces every stored message of the conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Conversation ID"
// @Param        request  body      MessagesRequest  true  "Full message list"
// @Success      200      {object}  domain.Conversation
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /conversations/{id} [put]
func (s *Server) handleReplaceConversation(w http.ResponseWriter, r *http.Request) {
	var req MessagesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := s.conversationService.Replace(r.Context(), r.PathValue("id"), req.Messages)
	if err != nil {
		s.writeConversationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// handleAppendMessages godoc
// @Summary      Append messages
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Conversation ID"
// @Param        request  body      MessagesRequest  true  "Messages to append"
// @Success      200      {object}  domain.Conversation
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /conversations/{id}/messages [post]
func (s *Server) handleAppendMessages(w http.ResponseWriter, r *http.Request) {
	var req MessagesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := s.conversationService.Append(r.Context(), r.PathValue("id"), req.Messages...)
	if err != nil {
		s.writeConversationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// handleDeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Param        id   path  string  true  "Conversation ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Router       /conversations/{id} [delete]
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.conversationService.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeConversationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conversation is being updated, retry")
	default:
		s.logger.Error("conversation request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Helper functions

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
