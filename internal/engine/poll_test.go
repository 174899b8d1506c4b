package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func statusSequenceHandler(t *testing.T, states []JobStatus) (http.Handler, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		idx := int(n) - 1
		if idx >= len(states) {
			idx = len(states) - 1
		}
		json.NewEncoder(w).Encode(StatusResponse{JobID: "job-1", Status: states[idx]})
	})
	return h, &calls
}

func TestWaitForTerminalStopsOnCompleted(t *testing.T) {
	handler, calls := statusSequenceHandler(t, []JobStatus{
		StatusPending, StatusProcessing, StatusCompleted,
	})
	c, _ := newTestClient(t, handler)

	status, err := c.WaitForTerminal(context.Background(), "job-1", time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != StatusCompleted {
		t.Errorf("status = %v", status.Status)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("status checked %d times, want 3", got)
	}
}

func TestWaitForTerminalFailedIsSuccessfulPoll(t *testing.T) {
	handler, _ := statusSequenceHandler(t, []JobStatus{StatusFailed})
	c, _ := newTestClient(t, handler)

	status, err := c.WaitForTerminal(context.Background(), "job-1", time.Millisecond)
	if err != nil {
		t.Fatalf("failed job returned error: %v", err)
	}
	if status.Status != StatusFailed {
		t.Errorf("status = %v", status.Status)
	}
}

func TestWaitForTerminalImmediateTerminal(t *testing.T) {
	handler, calls := statusSequenceHandler(t, []JobStatus{StatusCompleted})
	c, _ := newTestClient(t, handler)

	// A long interval never elapses because the first check is immediate.
	status, err := c.WaitForTerminal(context.Background(), "job-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != StatusCompleted {
		t.Errorf("status = %v", status.Status)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("status checked %d times, want 1", got)
	}
}

func TestWaitForTerminalContextCancel(t *testing.T) {
	handler, _ := statusSequenceHandler(t, []JobStatus{StatusProcessing})
	c, _ := newTestClient(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	_, err := c.WaitForTerminal(ctx, "job-1", 5*time.Millisecond)
	if err == nil {
		t.Fatal("expected error after context deadline")
	}
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
