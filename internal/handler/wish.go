package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wishflow/wishflow/internal/metrics"
	"github.com/wishflow/wishflow/internal/model"
	"github.com/wishflow/wishflow/internal/store"
)

type WishHandler struct {
	wishStore *store.WishStore
	logger    *slog.Logger
}

func NewWishHandler(ws *store.WishStore, logger *slog.Logger) *WishHandler {
	return &WishHandler{wishStore: ws, logger: logger}
}

type wishRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Priority     int             `json:"priority"`
}

func (h *WishHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	var req wishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	wish, err := h.wishStore.Create(req.Title, req.TargetAmount, req.Priority, user)
	if err != nil {
		writeStoreError(w, h.logger, "create wish", err)
		return
	}
	writeJSON(w, http.StatusCreated, wish)
}

func (h *WishHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	includeCompleted := r.URL.Query().Get("include_completed") == "true"

	wishes, err := h.wishStore.List(user, includeCompleted)
	if err != nil {
		writeStoreError(w, h.logger, "list wishes", err)
		return
	}
	if wishes == nil {
		wishes = []model.Wish{}
	}
	writeJSON(w, http.StatusOK, wishes)
}

func (h *WishHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req wishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	wish, err := h.wishStore.Update(id, user, req.Title, req.TargetAmount, req.Priority)
	if err != nil {
		writeStoreError(w, h.logger, "update wish", err)
		return
	}
	writeJSON(w, http.StatusOK, wish)
}

// Complete marks an unlocked wish fulfilled. Valid only from unlocked; a
// locked or completed wish answers 404 like a missing one.
func (h *WishHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.wishStore.Complete(id, user); err != nil {
		writeStoreError(w, h.logger, "complete wish", err)
		return
	}
	metrics.WishesCompleted.Inc()

	wish, err := h.wishStore.GetByID(id, user)
	if err != nil {
		writeStoreError(w, h.logger, "get wish", err)
		return
	}
	writeJSON(w, http.StatusOK, wish)
}

func (h *WishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.wishStore.Delete(id, user); err != nil {
		writeStoreError(w, h.logger, "delete wish", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
