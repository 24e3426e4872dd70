// Package server exposes the desk projections over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gicoinDesk/internal/desk"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/tx"
)

// Desk is the read surface the handlers need.
type Desk interface {
	AccountView() desk.AccountView
	StatsView() desk.StatsView
	ProposalViews() []desk.ProposalView
	EventFeed(account string) []model.EventRecord
	Notifications() []tx.Notification
}

// Handler handles HTTP requests.
type Handler struct {
	desk   Desk
	logger *zap.Logger
	// Limiter guards the projection routes.
	Limiter *RateLimiter
}

// NewHandler creates a new handler.
func NewHandler(d Desk, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{desk: d, logger: logger, Limiter: NewRateLimiter(DefaultRate, DefaultBurst)}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.desk.AccountView())
}

func (h *Handler) Proposals(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.desk.ProposalViews())
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.desk.StatsView())
}

// Events returns the global feed, or the account feed when ?account= is set.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account != "" && !common.IsHexAddress(account) {
		http.Error(w, "invalid account address", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, h.desk.EventFeed(account))
}

func (h *Handler) Notifications(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.desk.Notifications())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}
