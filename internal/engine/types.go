// Package engine is the HTTP client for the external analysis engine: file
// upload, pipeline submission, asynchronous status polling, and result
// retrieval. The engine does all statistical work; this package only moves
// configurations out and result payloads back.
package engine

import (
	"github.com/GKamundia/KrinoSeq/internal/assess"
	"github.com/GKamundia/KrinoSeq/internal/result"
)

// JobStatus is the engine-side lifecycle state of a submitted job.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status ends the polling loop.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// UploadResponse acknowledges an uploaded FASTA file.
type UploadResponse struct {
	JobID    string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Message  string    `json:"message"`
}

// StatusResponse is one observation of a job's state.
type StatusResponse struct {
	JobID    string         `json:"job_id"`
	Status   JobStatus      `json:"status"`
	Progress *float64       `json:"progress,omitempty"`
	Message  string         `json:"message"`
	FileInfo map[string]any `json:"file_info,omitempty"`
}

// AckResponse acknowledges a configure or execute request.
type AckResponse struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}

// ResultsResponse is the full outcome of a completed job. Every section
// beyond job_id and status is optional; the client must cope with any
// subset.
type ResultsResponse struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message,omitempty"`

	Summary          map[string]any  `json:"summary,omitempty"`
	DownloadURL      string          `json:"download_url,omitempty"`
	Visualization    map[string]any  `json:"visualization_data,omitempty"`
	FilteringProcess []result.Record `json:"filtering_process,omitempty"`

	Assessment *assess.Result `json:"quast_results,omitempty"`
}

// Distributions decodes the before/after visualization payload into
// chart-ready shapes.
func (r *ResultsResponse) Distributions() result.BeforeAfter {
	return result.DecodeBeforeAfter(r.Visualization)
}
