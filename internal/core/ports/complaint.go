package ports

import (
	"context"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// ListComplaintsFilter carries query parameters for listing complaints.
// ReporterID is set by the service for non-privileged actors and may not be
// widened by the caller.
type ListComplaintsFilter struct {
	ReporterID string
	Status     string
}

// ComplaintRepository defines persistence operations for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	Update(ctx context.Context, c *domain.Complaint) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListComplaintsFilter) ([]*domain.Complaint, error)
	CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error)
}

// FileComplaintInput carries a new complaint submission.
type FileComplaintInput struct {
	Subject  string
	Message  string
	Priority string // optional: low, medium, high
}

// ComplaintService defines the ledger use cases.
type ComplaintService interface {
	FileComplaint(ctx context.Context, actor Actor, input FileComplaintInput) (*domain.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, actor Actor, complaintID, status string) (*domain.Complaint, error)
	DeleteComplaint(ctx context.Context, actor Actor, complaintID string) error
	// ListComplaints scopes non-privileged actors to their own complaints.
	ListComplaints(ctx context.Context, actor Actor, status string) ([]*domain.Complaint, error)
}
