package domain

import (
	"errors"
	"time"
)

// ComplaintStatus is the reviewer-managed resolution state of a complaint.
type ComplaintStatus string

const (
	ComplaintPending     ComplaintStatus = "Pending"
	ComplaintOngoing     ComplaintStatus = "Ongoing Process"
	ComplaintSolved      ComplaintStatus = "Solved"
	ComplaintNotAccepted ComplaintStatus = "Not Accepted"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var ErrComplaintNotFound = errors.New("complaint not found")
var ErrEmptySubject = errors.New("complaint subject is empty")
var ErrEmptyMessage = errors.New("complaint message is empty")
var ErrInvalidComplaintStatus = errors.New("invalid complaint status")

// IsValid reports whether s is a member of the complaint status enum.
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintPending, ComplaintOngoing, ComplaintSolved, ComplaintNotAccepted:
		return true
	}
	return false
}

// Complaint is a reporter-submitted issue record. ReporterID is fixed at
// creation and never reassigned.
type Complaint struct {
	ID         string          `json:"id" bson:"_id,omitempty"`
	ReporterID string          `json:"reporter_id" bson:"reporter_id"`
	Subject    string          `json:"subject" bson:"subject"`
	Message    string          `json:"message" bson:"message"`
	Status     ComplaintStatus `json:"status" bson:"status"`
	Priority   string          `json:"priority,omitempty" bson:"priority,omitempty"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}
