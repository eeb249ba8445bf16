package services

import (
	"context"
	"errors"
	"time"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/events"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
	"github.com/mertdogan/campusdesk/internal/pkg/validation"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type leaveStore interface {
	Create(ctx context.Context, leave *models.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
	List(ctx context.Context, filter repositories.LeaveListFilter) ([]*models.LeaveRequest, error)
	UpdateDecision(ctx context.Context, id int64, status models.LeaveStatus, remarks string, decidedByID int64, decidedAt time.Time) error
	Stats(ctx context.Context) (*models.LeaveStats, error)
	CountByType(ctx context.Context) ([]models.LeaveTypeCount, error)
}

// LeaveService handles the leave application and approval workflow
type LeaveService struct {
	leaves  leaveStore
	emitter events.Emitter
	now     func() time.Time
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaves leaveStore, emitter events.Emitter) *LeaveService {
	return &LeaveService{leaves: leaves, emitter: emitter, now: time.Now}
}

// Apply files a leave request for the caller. The date range must start
// today or later and the reason must be substantial; both checks resolve
// before anything is written.
func (s *LeaveService) Apply(ctx context.Context, applicantID int64, applicantRole models.RoleType, req *dto.ApplyLeaveRequest) (*models.LeaveRequest, error) {
	fromDate, err := helpers.ParseDate(req.FromDate)
	if err != nil {
		return nil, apperrors.NewValidationError("From date must use the YYYY-MM-DD format")
	}
	toDate, err := helpers.ParseDate(req.ToDate)
	if err != nil {
		return nil, apperrors.NewValidationError("To date must use the YYYY-MM-DD format")
	}
	if msg := validation.ValidateDateRange(fromDate, toDate, true); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}
	if msg := validation.ValidateReason(req.Reason); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}

	leave := &models.LeaveRequest{
		ApplicantID:   applicantID,
		ApplicantRole: applicantRole,
		LeaveType:     req.LeaveType,
		FromDate:      fromDate,
		ToDate:        toDate,
		Reason:        req.Reason,
		Status:        models.LeavePending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, apperrors.NewOperationFailedError("Could not submit leave request", err)
	}
	return leave, nil
}

// GetByID retrieves a leave request. Applicants only see their own;
// faculty and admins see all.
func (s *LeaveService) GetByID(ctx context.Context, id, viewerID int64, viewerRole models.RoleType) (*models.LeaveRequest, error) {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLeaveNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load leave request", err)
	}
	if viewerRole == models.RoleStudent && leave.ApplicantID != viewerID {
		return nil, apperrors.ErrLeaveNotFound
	}
	return leave, nil
}

// MyLeaves lists the caller's own leave requests, newest first.
func (s *LeaveService) MyLeaves(ctx context.Context, applicantID int64) ([]*models.LeaveRequest, error) {
	leaves, err := s.leaves.List(ctx, repositories.LeaveListFilter{ApplicantID: applicantID})
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list leave requests", err)
	}
	return leaves, nil
}

// List lists leave requests for reviewers, with optional filters.
func (s *LeaveService) List(ctx context.Context, filter repositories.LeaveListFilter) ([]*models.LeaveRequest, error) {
	leaves, err := s.leaves.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list leave requests", err)
	}
	return leaves, nil
}

// Approve transitions a pending request to approved. The decision is
// announced on the notification channel after it commits; a delivery
// problem never rolls the decision back.
func (s *LeaveService) Approve(ctx context.Context, id, deciderID int64, remarks string) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, deciderID, remarks, workflow.ApproveLeave)
}

// Reject transitions a pending request to rejected. Remarks are
// mandatory so the applicant learns why.
func (s *LeaveService) Reject(ctx context.Context, id, deciderID int64, remarks string) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, deciderID, remarks, workflow.RejectLeave)
}

func (s *LeaveService) decide(ctx context.Context, id, deciderID int64, remarks string, transition func(models.LeaveStatus, string) (models.LeaveStatus, error)) (*models.LeaveRequest, error) {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLeaveNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load leave request", err)
	}

	next, err := transition(leave.Status, remarks)
	if err != nil {
		return nil, err
	}

	decidedAt := s.now()
	if err := s.leaves.UpdateDecision(ctx, id, next, remarks, deciderID, decidedAt); err != nil {
		if errors.Is(err, repositories.ErrLeaveAlreadyDecided) {
			// Another reviewer decided between our load and our write.
			return nil, apperrors.NewInvalidTransitionError("Leave request has already been decided")
		}
		return nil, apperrors.NewOperationFailedError("Could not record leave decision", err)
	}

	leave.Status = next
	leave.Remarks = remarks
	leave.DecidedByID = &deciderID
	leave.DecidedAt = &decidedAt

	s.emitter.Emit(events.TopicLeaveStatus, leave)
	return leave, nil
}

// Stats aggregates requests per workflow state.
func (s *LeaveService) Stats(ctx context.Context) (*models.LeaveStats, error) {
	stats, err := s.leaves.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not aggregate leave stats", err)
	}
	return stats, nil
}

// Analytics returns the per-type request counts.
func (s *LeaveService) Analytics(ctx context.Context) ([]models.LeaveTypeCount, error) {
	counts, err := s.leaves.CountByType(ctx)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not aggregate leave analytics", err)
	}
	return counts, nil
}
