package services

import (
	"context"
	"errors"
	"time"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
)

type feeStore interface {
	Create(ctx context.Context, fee *models.Fee) error
	GetByID(ctx context.Context, id int64) (*models.Fee, error)
	List(ctx context.Context, studentID int64, status models.FeeStatus) ([]*models.Fee, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type studentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// FeeService handles fee record business logic
type FeeService struct {
	fees     feeStore
	students studentGetter
	now      func() time.Time
}

// NewFeeService creates a new FeeService
func NewFeeService(fees feeStore, students studentGetter) *FeeService {
	return &FeeService{fees: fees, students: students, now: time.Now}
}

// Create raises a fee record against an existing student.
func (s *FeeService) Create(ctx context.Context, req *dto.CreateFeeRequest) (*models.Fee, error) {
	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Due date must use the YYYY-MM-DD format")
	}

	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load student", err)
	}

	fee := &models.Fee{
		StudentID: req.StudentID,
		FeeType:   req.FeeType,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Status:    models.FeeUnpaid,
	}
	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, apperrors.NewOperationFailedError("Could not create fee record", err)
	}
	return fee, nil
}

// GetByID retrieves a fee record
func (s *FeeService) GetByID(ctx context.Context, id int64) (*models.Fee, error) {
	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFeeNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load fee record", err)
	}
	return fee, nil
}

// List retrieves fee records filtered by student and/or payment status.
func (s *FeeService) List(ctx context.Context, studentID int64, status models.FeeStatus) ([]*models.Fee, error) {
	fees, err := s.fees.List(ctx, studentID, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list fee records", err)
	}
	return fees, nil
}

// MyFees lists the fee records of the student behind the calling account.
func (s *FeeService) MyFees(ctx context.Context, userID int64) ([]*models.Fee, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load student", err)
	}
	return s.List(ctx, student.ID, "")
}

// MarkPaid transitions an unpaid fee to paid and stamps the payment time.
// Paying an already settled fee fails instead of silently re-stamping.
func (s *FeeService) MarkPaid(ctx context.Context, id int64) (*models.Fee, error) {
	fee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fee.Status == models.FeePaid {
		return nil, apperrors.NewInvalidTransitionError("Fee record is already marked as paid")
	}

	paidAt := s.now()
	if err := s.fees.MarkPaid(ctx, id, paidAt); err != nil {
		if errors.Is(err, repositories.ErrFeeAlreadyPaid) {
			return nil, apperrors.NewInvalidTransitionError("Fee record is already marked as paid")
		}
		return nil, apperrors.NewOperationFailedError("Could not mark fee as paid", err)
	}

	fee.Status = models.FeePaid
	fee.PaidAt = &paidAt
	return fee, nil
}

// Delete removes a fee record.
func (s *FeeService) Delete(ctx context.Context, id int64) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFeeNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete fee record", err)
	}
	return nil
}
