package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// =============================================================================
// MOCK DATA - Inspect and reload the seeded records
// =============================================================================

// MockStatusDTO counts what is loaded.
type MockStatusDTO struct {
	Interviews    int `json:"interviews"`
	LeaveRequests int `json:"leave_requests"`
	Holidays      int `json:"holidays"`
}

// GetMockStatus returns record counts.
// GET /api/mock
func (h *Handler) GetMockStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.mockStatus(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to read mock data", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ResetMockData drops everything and loads the seed again, undoing any
// interviews or leave requests created through the API.
// POST /api/mock/reset
func (h *Handler) ResetMockData(w http.ResponseWriter, r *http.Request) {
	status, err := h.ReloadMockData(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload mock data", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ReloadMockData replaces the store contents with the seed in one step.
func (h *Handler) ReloadMockData(ctx context.Context) (MockStatusDTO, error) {
	if h.Seed == nil {
		h.Store.Reset()
	} else if err := h.Seed.Replace(ctx, h.Store); err != nil {
		return MockStatusDTO{}, fmt.Errorf("failed to load seed: %w", err)
	}

	status, err := h.mockStatus(ctx)
	if err != nil {
		return MockStatusDTO{}, err
	}
	h.Logger.Info("mock data reset",
		zap.Int("interviews", status.Interviews),
		zap.Int("leave_requests", status.LeaveRequests))
	return status, nil
}

func (h *Handler) mockStatus(ctx context.Context) (MockStatusDTO, error) {
	ivs, err := h.Store.ListInterviews(ctx)
	if err != nil {
		return MockStatusDTO{}, err
	}
	reqs, err := h.Store.ListLeaveRequests(ctx)
	if err != nil {
		return MockStatusDTO{}, err
	}
	return MockStatusDTO{
		Interviews:    len(ivs),
		LeaveRequests: len(reqs),
		Holidays:      h.Store.HolidayCount(),
	}, nil
}
