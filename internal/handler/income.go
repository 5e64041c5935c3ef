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

type IncomeHandler struct {
	incomeStore *store.IncomeStore
	logger      *slog.Logger
}

func NewIncomeHandler(is *store.IncomeStore, logger *slog.Logger) *IncomeHandler {
	return &IncomeHandler{incomeStore: is, logger: logger}
}

type incomeRequest struct {
	Title       string          `json:"title"`
	DailyAmount decimal.Decimal `json:"daily_amount"`
}

func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	src, err := h.incomeStore.Create(req.Title, req.DailyAmount, user)
	if err != nil {
		writeStoreError(w, h.logger, "create income", err)
		return
	}
	writeJSON(w, http.StatusCreated, src)
}

func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	sources, err := h.incomeStore.List(user)
	if err != nil {
		writeStoreError(w, h.logger, "list income", err)
		return
	}
	if sources == nil {
		sources = []model.IncomeSource{}
	}
	writeJSON(w, http.StatusOK, sources)
}

func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	src, err := h.incomeStore.Update(id, user, req.Title, req.DailyAmount)
	if err != nil {
		writeStoreError(w, h.logger, "update income", err)
		return
	}
	writeJSON(w, http.StatusOK, src)
}

func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.incomeStore.Delete(id, user); err != nil {
		writeStoreError(w, h.logger, "delete income", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type attendanceRequest struct {
	Date string `json:"date"`
}

// RecordAttendance checks the user in against a source for one day. A repeat
// submission for an already-recorded day answers 200 with the existing event
// instead of an error.
func (h *IncomeHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ev, created, err := h.incomeStore.RecordAttendance(id, req.Date, user)
	if err != nil {
		writeStoreError(w, h.logger, "record attendance", err)
		return
	}
	if created {
		metrics.AttendanceRecorded.Inc()
		writeJSON(w, http.StatusCreated, ev)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *IncomeHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	events, err := h.incomeStore.ListAttendance(user)
	if err != nil {
		writeStoreError(w, h.logger, "list attendance", err)
		return
	}
	if events == nil {
		events = []model.AttendanceEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
