package core

import "time"

// RunStatus is the outcome of one report run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// ReportRun records that a report was computed and where it was written.
type ReportRun struct {
	ID          string    `json:"id"`
	Report      string    `json:"report"`
	Reference   string    `json:"reference,omitempty"`
	OutputPath  string    `json:"output_path,omitempty"`
	RecordCount int       `json:"record_count"`
	Status      RunStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
