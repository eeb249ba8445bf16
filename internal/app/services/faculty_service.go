package services

import (
	"context"
	"errors"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/auth"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
	"github.com/mertdogan/campusdesk/internal/pkg/validation"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type facultyStore interface {
	Create(ctx context.Context, faculty *models.FacultyMember) error
	GetByID(ctx context.Context, id int64) (*models.FacultyMember, error)
	GetByUserID(ctx context.Context, userID int64) (*models.FacultyMember, error)
	List(ctx context.Context, departmentID int64, status models.EntityStatus) ([]*models.FacultyMember, error)
	Update(ctx context.Context, faculty *models.FacultyMember) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	Delete(ctx context.Context, id int64) error
}

type subjectLister interface {
	List(ctx context.Context, courseID, departmentID int64, status models.EntityStatus) ([]*models.Subject, error)
}

// FacultyService handles faculty member business logic
type FacultyService struct {
	faculty     facultyStore
	users       userAccountStore
	departments departmentGetter
	subjects    subjectLister
}

// NewFacultyService creates a new FacultyService
func NewFacultyService(faculty facultyStore, users userAccountStore, departments departmentGetter, subjects subjectLister) *FacultyService {
	return &FacultyService{faculty: faculty, users: users, departments: departments, subjects: subjects}
}

// checkSubjectAssignments verifies every assigned subject belongs to a
// course of the faculty member's department.
func (s *FacultyService) checkSubjectAssignments(ctx context.Context, departmentID int64, subjectIDs []int64) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	subjects, err := s.subjects.List(ctx, 0, departmentID, "")
	if err != nil {
		return apperrors.NewOperationFailedError("Could not load department subjects", err)
	}
	known := make(map[int64]bool, len(subjects))
	for _, subject := range subjects {
		known[subject.ID] = true
	}
	for _, id := range subjectIDs {
		if !known[id] {
			return apperrors.NewValidationError("Assigned subjects must belong to the faculty member's department")
		}
	}
	return nil
}

// Create creates a faculty member: a login account plus the staff record
// and its subject assignments. The account is removed again if the staff
// insert fails.
func (s *FacultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest) (*models.FacultyMember, error) {
	if msg := validation.ValidatePasswordStrength(req.Password); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}

	department, err := s.departments.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load department", err)
	}
	if department.Status != models.StatusActive {
		return nil, apperrors.NewValidationError("Cannot add a faculty member to an inactive department")
	}

	if err := s.checkSubjectAssignments(ctx, req.DepartmentID, req.SubjectIDs); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not create faculty member", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleFaculty,
		Status:       models.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create faculty account", err)
	}

	faculty := &models.FacultyMember{
		UserID:       user.ID,
		EmployeeID:   req.EmployeeID,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
		SubjectIDs:   req.SubjectIDs,
		Status:       models.StatusActive,
	}
	if err := s.faculty.Create(ctx, faculty); err != nil {
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			logger.Error().Err(delErr).Int64("userID", user.ID).Msg("Failed to clean up account after faculty creation failure")
		}
		if errors.Is(err, repositories.ErrEmployeeIDAlreadyExists) {
			return nil, apperrors.NewConflictError("A faculty member with this employee ID already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create faculty member", err)
	}

	faculty.User = user
	return faculty, nil
}

// GetByID retrieves a faculty member with its account attached.
func (s *FacultyService) GetByID(ctx context.Context, id int64) (*models.FacultyMember, error) {
	faculty, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load faculty member", err)
	}
	if user, err := s.users.GetByID(ctx, faculty.UserID); err == nil {
		faculty.User = user
	}
	return faculty, nil
}

// List retrieves faculty members filtered by department and/or status.
func (s *FacultyService) List(ctx context.Context, departmentID int64, status models.EntityStatus) ([]*models.FacultyMember, error) {
	members, err := s.faculty.List(ctx, departmentID, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list faculty members", err)
	}
	return members, nil
}

// Update updates a faculty member's designation and subject assignments.
func (s *FacultyService) Update(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.FacultyMember, error) {
	faculty, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSubjectAssignments(ctx, faculty.DepartmentID, req.SubjectIDs); err != nil {
		return nil, err
	}

	faculty.Designation = req.Designation
	faculty.SubjectIDs = req.SubjectIDs

	if err := s.faculty.Update(ctx, faculty); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update faculty member", err)
	}
	return faculty, nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *FacultyService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	faculty, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrFacultyNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not load faculty member", err)
	}
	next := workflow.Toggle(faculty.Status)
	if err := s.faculty.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrFacultyNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle faculty status", err)
	}
	return next, nil
}

// Delete removes a faculty member and its login account.
func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	faculty, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFacultyNotFound
		}
		return apperrors.NewOperationFailedError("Could not load faculty member", err)
	}

	if err := s.faculty.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFacultyNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete faculty member", err)
	}
	if err := s.users.Delete(ctx, faculty.UserID); err != nil {
		logger.Error().Err(err).Int64("userID", faculty.UserID).Msg("Failed to delete account for removed faculty member")
	}
	return nil
}
