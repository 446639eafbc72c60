package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/api/metrics"
	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ComplaintService implements the complaint ledger use cases.
type ComplaintService struct {
	repo   ports.ComplaintRepository
	cache  ports.AggregateCache
	logger zerolog.Logger
}

func NewComplaintService(repo ports.ComplaintRepository, cache ports.AggregateCache, logger zerolog.Logger) *ComplaintService {
	return &ComplaintService{repo: repo, cache: cache, logger: logger}
}

// FileComplaint records a new complaint with status Pending. The reporter is
// fixed at creation and never reassigned.
func (s *ComplaintService) FileComplaint(ctx context.Context, actor ports.Actor, input ports.FileComplaintInput) (*domain.Complaint, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, domain.ErrEmptySubject
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	complaint := &domain.Complaint{
		ID:         uuid.NewString(),
		ReporterID: actor.ID,
		Subject:    input.Subject,
		Message:    input.Message,
		Status:     domain.ComplaintPending,
		Priority:   input.Priority,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		s.logger.Error().Err(err).Str("reporter_id", actor.ID).Msg("failed to file complaint")
		return nil, err
	}

	metrics.ComplaintsFiledTotal.Inc()
	s.invalidateAggregates(ctx)
	s.logger.Info().Str("complaint_id", complaint.ID).Str("reporter_id", actor.ID).Msg("complaint filed")

	return complaint, nil
}

// UpdateComplaintStatus advances a complaint's resolution state. Reviewers
// (admin/manager) may set any status; the reporter may only cancel their own
// complaint (move it to Not Accepted) while it is still Pending.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, actor ports.Actor, complaintID, status string) (*domain.Complaint, error) {
	newStatus := domain.ComplaintStatus(status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidComplaintStatus, status)
	}

	complaint, err := s.loadForActor(ctx, actor, complaintID)
	if err != nil {
		return nil, err
	}

	if !domain.IsReviewer(actor.Role) {
		cancelling := newStatus == domain.ComplaintNotAccepted && complaint.Status == domain.ComplaintPending
		if !cancelling {
			return nil, domain.ErrNotAuthorized
		}
	}

	prevStatus := complaint.Status
	complaint.Status = newStatus
	if err := s.repo.Update(ctx, complaint); err != nil {
		s.logger.Error().Err(err).Str("complaint_id", complaintID).Msg("failed to update complaint")
		return nil, err
	}

	if prevStatus == domain.ComplaintPending || newStatus == domain.ComplaintPending {
		s.invalidateAggregates(ctx)
	}

	s.logger.Info().
		Str("complaint_id", complaintID).
		Str("from", string(prevStatus)).
		Str("to", string(newStatus)).
		Str("actor", actor.ID).
		Msg("complaint status updated")

	return complaint, nil
}

// DeleteComplaint removes a complaint. Reviewers delete unconditionally; the
// reporter only while the complaint is still Pending.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, actor ports.Actor, complaintID string) error {
	complaint, err := s.loadForActor(ctx, actor, complaintID)
	if err != nil {
		return err
	}

	if !domain.IsReviewer(actor.Role) && complaint.Status != domain.ComplaintPending {
		return domain.ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, complaintID); err != nil {
		return err
	}

	if complaint.Status == domain.ComplaintPending {
		s.invalidateAggregates(ctx)
	}

	s.logger.Info().Str("complaint_id", complaintID).Str("actor", actor.ID).Msg("complaint deleted")
	return nil
}

// ListComplaints returns complaints visible to the actor. Non-privileged
// actors only ever see complaints they authored; this scoping is enforced in
// the repository query, not filtered after the fact.
func (s *ComplaintService) ListComplaints(ctx context.Context, actor ports.Actor, status string) ([]*domain.Complaint, error) {
	filter := ports.ListComplaintsFilter{Status: status}
	if !domain.IsReviewer(actor.Role) {
		filter.ReporterID = actor.ID
	}
	return s.repo.List(ctx, filter)
}

// loadForActor fetches a complaint and checks visibility. Non-privileged
// actors get ErrNotAuthorized whether the complaint is missing or someone
// else's, so the outcome never confirms existence.
func (s *ComplaintService) loadForActor(ctx context.Context, actor ports.Actor, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, complaintID)
	if err != nil {
		if domain.IsReviewer(actor.Role) {
			return nil, err
		}
		return nil, domain.ErrNotAuthorized
	}
	if !domain.IsReviewer(actor.Role) && complaint.ReporterID != actor.ID {
		return nil, domain.ErrNotAuthorized
	}
	return complaint, nil
}

func (s *ComplaintService) invalidateAggregates(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate aggregate cache")
	}
}
