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

type HabitHandler struct {
	habitStore *store.HabitStore
	logger     *slog.Logger
}

func NewHabitHandler(hs *store.HabitStore, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{habitStore: hs, logger: logger}
}

type habitRequest struct {
	Title        string          `json:"title"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.habitStore.Create(req.Title, req.RewardAmount, user)
	if err != nil {
		writeStoreError(w, h.logger, "create habit", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	tasks, err := h.habitStore.List(user)
	if err != nil {
		writeStoreError(w, h.logger, "list habits", err)
		return
	}
	if tasks == nil {
		tasks = []model.HabitTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.habitStore.Update(id, user, req.Title, req.RewardAmount)
	if err != nil {
		writeStoreError(w, h.logger, "update habit", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.habitStore.Delete(id, user); err != nil {
		writeStoreError(w, h.logger, "delete habit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkinRequest struct {
	Date string `json:"date"`
}

// RecordCheckin marks a habit done for one day. Duplicate submissions answer
// 200 with the existing check-in.
func (h *HabitHandler) RecordCheckin(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ci, created, err := h.habitStore.RecordCheckin(id, req.Date, user)
	if err != nil {
		writeStoreError(w, h.logger, "record checkin", err)
		return
	}
	if created {
		metrics.CheckinsRecorded.Inc()
		writeJSON(w, http.StatusCreated, ci)
		return
	}
	writeJSON(w, http.StatusOK, ci)
}

func (h *HabitHandler) ListCheckins(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	checkins, err := h.habitStore.ListCheckins(user)
	if err != nil {
		writeStoreError(w, h.logger, "list checkins", err)
		return
	}
	if checkins == nil {
		checkins = []model.HabitCheckin{}
	}
	writeJSON(w, http.StatusOK, checkins)
}
