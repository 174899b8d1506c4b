package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GKamundia/KrinoSeq/internal/engine"
	"github.com/GKamundia/KrinoSeq/internal/result"
	"github.com/GKamundia/KrinoSeq/internal/storage/sqlite"
)

type handlers struct {
	store  *sqlite.Store
	logger *slog.Logger
}

func (h *handlers) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*sqlite.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (h *handlers) getRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// interpretRun re-interprets the stored raw results. Stages whose details
// cannot be decoded come back as placeholders, never as an error response.
func (h *handlers) interpretRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	if len(run.Results) == 0 {
		writeError(w, http.StatusConflict, "run has no stored results")
		return
	}

	var results engine.ResultsResponse
	if err := json.Unmarshal(run.Results, &results); err != nil {
		h.logger.Error("stored results are not valid JSON",
			slog.String("run_id", run.ID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "stored results are corrupt")
		return
	}

	disp := result.NewDispatcher(h.logger)
	stages := disp.InterpretAll(results.FilteringProcess)
	summary := result.Summarize(results.FilteringProcess, h.logger)

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  run.ID,
		"job_id":  run.JobID,
		"stages":  stages,
		"summary": summary,
	})
}

func (h *handlers) loadRun(w http.ResponseWriter, r *http.Request) (*sqlite.Run, bool) {
	id := chi.URLParam(r, "runID")
	run, err := h.store.GetRun(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load run",
			slog.String("run_id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
