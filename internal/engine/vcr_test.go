package engine

import (
	"context"
	"testing"

	"github.com/GKamundia/KrinoSeq/internal/result"
	"github.com/GKamundia/KrinoSeq/internal/testutil"
)

// TestFilterRunAgainstRecordedEngine replays a recorded status/results
// exchange with a real engine and runs the full interpretation path over
// the replayed payload.
func TestFilterRunAgainstRecordedEngine(t *testing.T) {
	r, cleanup := testutil.NewVCRRecorder(t, "filter_run")
	defer cleanup()

	c := NewClient(
		WithHTTPClient(testutil.VCRHTTPClient(r)),
		WithLogger(testLogger()),
	)

	status, err := c.Status(context.Background(), "vcr-job-1")
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != StatusCompleted {
		t.Fatalf("status = %v", status.Status)
	}

	results, err := c.Results(context.Background(), "vcr-job-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(results.FilteringProcess) != 1 {
		t.Fatalf("records = %+v", results.FilteringProcess)
	}

	interpreted := result.NewDispatcher(testLogger()).InterpretAll(results.FilteringProcess)
	if interpreted[0].Kind != result.KindIQR {
		t.Fatalf("kind = %v, reason = %q", interpreted[0].Kind, interpreted[0].Reason)
	}
	if interpreted[0].IQR.Q1 != 612 || interpreted[0].IQR.Outliers.UpperCount != 2 {
		t.Errorf("interpreted detail = %+v", interpreted[0].IQR)
	}

	sum := result.Summarize(results.FilteringProcess, testLogger())
	if sum.TotalBefore != 1840 || sum.TotalAfter != 1772 {
		t.Errorf("summary totals = %+v", sum)
	}
}
