package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReportRequest asks a worker to compute one report and write it to the
// output directory. Reference uses the "YYYY-MM-DD HH:MM:SS" layout; an
// empty Reference means "now" on the worker.
type ReportRequest struct {
	ID           string    `json:"id"`
	Report       string    `json:"report"`
	Reference    string    `json:"reference,omitempty"`
	Category     string    `json:"category,omitempty"`
	Month        string    `json:"month,omitempty"`
	RoundingUnit int64     `json:"rounding_unit,omitempty"`
	Query        string    `json:"query,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewReportRequest creates a request with a fresh ID
func NewReportRequest(report string) *ReportRequest {
	return &ReportRequest{
		ID:        uuid.NewString(),
		Report:    report,
		Timestamp: time.Now(),
	}
}

// Validate checks the fields every request needs
func (m *ReportRequest) Validate() error {
	if m.ID == "" {
		return errors.New("report request has no id")
	}
	if m.Report == "" {
		return errors.New("report request has no report name")
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *ReportRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestFromJSON creates a message from JSON bytes
func ReportRequestFromJSON(data []byte) (*ReportRequest, error) {
	var msg ReportRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
