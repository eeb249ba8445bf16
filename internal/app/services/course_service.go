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

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, departmentID int64, status models.EntityStatus) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	CountDependents(ctx context.Context, id int64) (models.DependentCounts, error)
	Delete(ctx context.Context, id int64) error
}

type departmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// CourseService handles course business logic
type CourseService struct {
	courses     courseStore
	departments departmentGetter
}

// NewCourseService creates a new CourseService
func NewCourseService(courses courseStore, departments departmentGetter) *CourseService {
	return &CourseService{courses: courses, departments: departments}
}

func validateDuration(value int, unit models.DurationUnit) error {
	max := 6
	if unit == models.DurationSemester {
		max = 12
	}
	ok := validation.NewNumericValidation(value).WithMin(1).WithMax(max).Validate()
	if !ok {
		return apperrors.NewValidationError("Course duration is out of range for the selected unit")
	}
	return nil
}

// Create creates a course under an existing department.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}
	unit := models.DurationUnit(req.DurationUnit)
	if err := validateDuration(req.DurationValue, unit); err != nil {
		return nil, err
	}

	department, err := s.departments.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load department", err)
	}
	if department.Status != models.StatusActive {
		return nil, apperrors.NewValidationError("Cannot add a course to an inactive department")
	}

	course := &models.Course{
		Name:          req.Name,
		Code:          req.Code,
		DepartmentID:  req.DepartmentID,
		DurationValue: req.DurationValue,
		DurationUnit:  unit,
		Status:        models.StatusActive,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrCourseAlreadyExists) {
			return nil, apperrors.NewConflictError("A course with this code already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create course", err)
	}
	return course, nil
}

// GetByID retrieves a course
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load course", err)
	}
	return course, nil
}

// List retrieves courses filtered by department and/or status
func (s *CourseService) List(ctx context.Context, departmentID int64, status models.EntityStatus) ([]*models.Course, error) {
	courses, err := s.courses.List(ctx, departmentID, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list courses", err)
	}
	return courses, nil
}

// Options resolves the course picker entries for a department selection.
// Only active courses of the department appear, in listing order, each
// carrying the semester bound it imposes downstream.
func (s *CourseService) Options(ctx context.Context, departmentID int64) ([]dto.CourseOptionResponse, error) {
	courses, err := s.courses.List(ctx, departmentID, "")
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list courses", err)
	}

	children := make([]selector.Child, 0, len(courses))
	for _, c := range courses {
		children = append(children, selector.Child{
			Option: selector.Option{
				ID:              c.ID,
				Label:           c.Name,
				ConstraintValue: c.TotalSemesters(),
			},
			ParentID: c.DepartmentID,
			Active:   c.Status == models.StatusActive,
		})
	}

	options := []dto.CourseOptionResponse{}
	for _, opt := range selector.ResolveChildren(departmentID, children) {
		options = append(options, dto.CourseOptionResponse{
			ID:             opt.ID,
			Label:          opt.Label,
			TotalSemesters: opt.ConstraintValue,
		})
	}
	return options, nil
}

// SemesterBound returns the number of selectable semesters for a course,
// or the default bound when no course is given.
func (s *CourseService) SemesterBound(ctx context.Context, courseID int64) (int, error) {
	if courseID == 0 {
		return selector.DeriveBound(nil), nil
	}
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return selector.DeriveBound(course), nil
}

// Update updates a course's editable fields. The owning department is
// immutable after creation.
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}
	unit := models.DurationUnit(req.DurationUnit)
	if err := validateDuration(req.DurationValue, unit); err != nil {
		return nil, err
	}

	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Code = req.Code
	course.DurationValue = req.DurationValue
	course.DurationUnit = unit

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrCourseAlreadyExists) {
			return nil, apperrors.NewConflictError("A course with this code already exists")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update course", err)
	}
	return course, nil
}

// Delete hard-deletes a course unless subjects or students reference it.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	dependents, err := s.courses.CountDependents(ctx, id)
	if err != nil {
		return apperrors.NewOperationFailedError("Could not check course dependents", err)
	}
	if err := workflow.DecideDelete("course", dependents); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete course", err)
	}
	return nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *CourseService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := workflow.Toggle(course.Status)
	if err := s.courses.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrCourseNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle course status", err)
	}
	return next, nil
}
