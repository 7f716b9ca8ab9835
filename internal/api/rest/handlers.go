package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fortuna/scorebot/internal/assistant"
	"github.com/fortuna/scorebot/internal/teams"
	"github.com/gorilla/mux"
)

// CommandHandler answers one assistant command
type CommandHandler interface {
	Handle(ctx context.Context, text string, say assistant.Say) (bool, error)
}

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	commands CommandHandler
	teams    *teams.Directory
	cache    HealthChecker
	timeout  time.Duration
}

// NewHandler creates a new handler. cache may be nil when the page cache is disabled.
func NewHandler(commands CommandHandler, dir *teams.Directory, cache HealthChecker, timeout time.Duration) *Handler {
	return &Handler{
		commands: commands,
		teams:    dir,
		cache:    cache,
		timeout:  timeout,
	}
}

// CommandRequest is the body of POST /api/v1/commands
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse reports whether the command was a sports question and,
// if so, what the assistant said
type CommandResponse struct {
	Handled  bool   `json:"handled"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HealthCheck handles health check requests. A cache outage degrades the
// service but commands still answer from fresh fetches, so it stays 200.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	cacheStatus := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.HealthCheck(ctx); err != nil {
			log.Printf("[rest] cache health check failed: %v", err)
			status = "degraded"
			cacheStatus = "unavailable"
		} else {
			cacheStatus = "ok"
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"service": "scorebot",
		"cache":   cacheStatus,
	})
}

// HandleCommand runs a free-text command through the sports router
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		respondError(w, http.StatusBadRequest, "Missing field 'command'", nil)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var resp CommandResponse
	handled, err := h.commands.Handle(ctx, req.Command, func(s string) {
		resp.Response = s
	})
	resp.Handled = handled
	if err != nil {
		resp.Error = err.Error()
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetTeams returns the team directory
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	all := h.teams.All()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": all,
		"count": len(all),
	})
}

// GetTeam returns a single team by abbreviation
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	abbr := mux.Vars(r)["abbreviation"]

	team, ok := h.teams.ByAbbreviation(abbr)
	if !ok {
		respondError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
