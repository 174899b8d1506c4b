package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		ID:        "run-1",
		JobID:     "job-1",
		InputFile: "assembly.fasta",
		Status:    "completed",
		Config:    json.RawMessage(`{"stages":[{"method":"iqr"}]}`),
		Results:   json.RawMessage(`{"job_id":"job-1"}`),
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	if run.CreatedAt.IsZero() || run.UpdatedAt.IsZero() {
		t.Error("timestamps not filled on save")
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.JobID != "job-1" || got.Status != "completed" || got.InputFile != "assembly.fasta" {
		t.Errorf("run = %+v", got)
	}
	if string(got.Config) != `{"stages":[{"method":"iqr"}]}` {
		t.Errorf("config = %s", got.Config)
	}
	if got.Summary != nil {
		t.Errorf("absent summary came back as %s", got.Summary)
	}
}

func TestGetRunByJobID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, &Run{ID: "run-1", JobID: "job-9", InputFile: "a.fasta", Status: "failed"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetRunByJobID(ctx, "job-9")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "run-1" {
		t.Errorf("run id = %q", got.ID)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRunUpdatesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{ID: "run-1", JobID: "job-1", InputFile: "a.fasta", Status: "pending"}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	run.Status = "completed"
	run.Summary = json.RawMessage(`{"total_before":100}`)
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "completed" || string(got.Summary) != `{"total_before":100}` {
		t.Errorf("run = %+v", got)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("update created a second row: %d runs", len(runs))
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &Run{
			ID: id, JobID: "job-" + id, InputFile: "a.fasta", Status: "completed",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].ID != "run-c" || runs[2].ID != "run-a" {
		t.Errorf("order = %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != "run-c" {
		t.Errorf("limited list = %d runs starting %s", len(limited), limited[0].ID)
	}
}

func TestDeleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, &Run{ID: "run-1", JobID: "job-1", InputFile: "a.fasta", Status: "completed"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(ctx, "run-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetRun(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("run still present after delete: %v", err)
	}
	if err := s.DeleteRun(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete returned %v, want ErrNotFound", err)
	}
}
