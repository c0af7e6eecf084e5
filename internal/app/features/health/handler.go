package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/questboard/questboard/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// GatewayChecker reports whether the Discord gateway has completed its
// initial guild sync.
type GatewayChecker interface {
	Ready() bool
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client
	Gateway GatewayChecker
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, gateway GatewayChecker, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Gateway: gateway,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Gateway  string `json:"gateway,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "gateway":"ready" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
//
// Gateway state is informational only: a dashboard with an empty guild
// snapshot still serves logins, so a syncing gateway does not fail the
// check.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if h.Gateway != nil {
		if h.Gateway.Ready() {
			resp.Gateway = "ready"
		} else {
			resp.Gateway = "syncing"
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
