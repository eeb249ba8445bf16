package services

import (
	"context"
	"errors"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/selector"
	"github.com/mertdogan/campusdesk/internal/pkg/validation"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type departmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context, status models.EntityStatus) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	CountDependents(ctx context.Context, id int64) (models.DependentCounts, error)
	Delete(ctx context.Context, id int64) error
}

// DepartmentService handles department business logic
type DepartmentService struct {
	departments departmentStore
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departments departmentStore) *DepartmentService {
	return &DepartmentService{departments: departments}
}

func validateCode(code string) error {
	ok := validation.NewStringValidation(code).
		WithPattern(validation.CompiledPatterns.RollNo).
		Validate()
	if !ok {
		return apperrors.NewValidationError("Code must be 2 to 20 uppercase letters or digits")
	}
	return nil
}

// Create creates a department. New departments start active.
func (s *DepartmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:               req.Name,
		Code:               req.Code,
		Status:             models.StatusActive,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
	}
	if err := s.departments.Create(ctx, department); err != nil {
		if errors.Is(err, repositories.ErrDepartmentAlreadyExists) {
			return nil, apperrors.NewConflictError("A department with this name or code already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create department", err)
	}
	return department, nil
}

// GetByID retrieves a department
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load department", err)
	}
	return department, nil
}

// List retrieves departments, optionally filtered by status
func (s *DepartmentService) List(ctx context.Context, status models.EntityStatus) ([]*models.Department, error) {
	departments, err := s.departments.List(ctx, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list departments", err)
	}
	return departments, nil
}

// Options lists the active departments as picker options for the top of
// a department/course/semester selection chain.
func (s *DepartmentService) Options(ctx context.Context) ([]selector.Option, error) {
	departments, err := s.departments.List(ctx, models.StatusActive)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list departments", err)
	}
	options := []selector.Option{}
	for _, d := range departments {
		options = append(options, selector.Option{ID: d.ID, Label: d.Name})
	}
	return options, nil
}

// Update updates a department's editable fields
func (s *DepartmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}

	department, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name
	department.Code = req.Code
	department.HeadOfDepartmentID = req.HeadOfDepartmentID

	if err := s.departments.Update(ctx, department); err != nil {
		if errors.Is(err, repositories.ErrDepartmentAlreadyExists) {
			return nil, apperrors.NewConflictError("A department with this name or code already exists")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update department", err)
	}
	return department, nil
}

// Delete hard-deletes a department. Any dependent course, subject,
// student or faculty record blocks the delete with a per-category
// breakdown; deactivation is the recovery path.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	dependents, err := s.departments.CountDependents(ctx, id)
	if err != nil {
		return apperrors.NewOperationFailedError("Could not check department dependents", err)
	}
	if err := workflow.DecideDelete("department", dependents); err != nil {
		return err
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete department", err)
	}
	return nil
}

// Deactivate marks a department inactive without touching its dependents.
func (s *DepartmentService) Deactivate(ctx context.Context, id int64) error {
	if err := s.departments.UpdateStatus(ctx, id, models.StatusInactive); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return apperrors.NewOperationFailedError("Could not deactivate department", err)
	}
	return nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *DepartmentService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	department, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := workflow.Toggle(department.Status)
	if err := s.departments.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrDepartmentNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle department status", err)
	}
	return next, nil
}
