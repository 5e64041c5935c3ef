package handler

import (
	"log/slog"
	"net/http"

	"github.com/wishflow/wishflow/internal/metrics"
	"github.com/wishflow/wishflow/internal/store"
)

type PoolHandler struct {
	poolStore *store.PoolStore
	logger    *slog.Logger
}

func NewPoolHandler(ps *store.PoolStore, logger *slog.Logger) *PoolHandler {
	return &PoolHandler{poolStore: ps, logger: logger}
}

// Balance returns the derived pool balance with its earned/habit/committed
// breakdown for the dashboard.
func (h *PoolHandler) Balance(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	pool, err := h.poolStore.ComputeBalance(user)
	if err != nil {
		writeStoreError(w, h.logger, "compute balance", err)
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

type unlockResponse struct {
	Unlocked []int64 `json:"unlocked"`
}

// Unlock runs the greedy engine. An empty result is a normal 200, not an
// error: it just means nothing was affordable.
func (h *PoolHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	ids, err := h.poolStore.GreedyUnlock(user)
	if err != nil {
		writeStoreError(w, h.logger, "greedy unlock", err)
		return
	}
	metrics.WishesUnlocked.Add(float64(len(ids)))

	if len(ids) > 0 {
		h.logger.Info("wishes unlocked", "user", user, "count", len(ids))
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, http.StatusOK, unlockResponse{Unlocked: ids})
}
