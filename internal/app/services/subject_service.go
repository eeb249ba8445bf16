package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/selector"
	"github.com/mertdogan/campusdesk/internal/pkg/validation"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type subjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, courseID, departmentID int64, status models.EntityStatus) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	Delete(ctx context.Context, id int64) error
}

type courseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

type facultyGetter interface {
	GetByID(ctx context.Context, id int64) (*models.FacultyMember, error)
}

// SubjectService handles subject business logic
type SubjectService struct {
	subjects subjectStore
	courses  courseGetter
	faculty  facultyGetter
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects subjectStore, courses courseGetter, faculty facultyGetter) *SubjectService {
	return &SubjectService{subjects: subjects, courses: courses, faculty: faculty}
}

// checkSemester enforces the bound the selected course imposes: a subject
// must sit within [1, totalSemesters] of its course.
func checkSemester(semester int, course *models.Course) error {
	bound := selector.DeriveBound(course)
	ok := validation.NewNumericValidation(semester).WithMin(1).WithMax(bound).Validate()
	if !ok {
		return apperrors.NewValidationError(
			fmt.Sprintf("Semester must be between 1 and %d for this course", bound))
	}
	return nil
}

func (s *SubjectService) checkFacultyAssignment(ctx context.Context, facultyID *int64, course *models.Course) error {
	if facultyID == nil {
		return nil
	}
	member, err := s.faculty.GetByID(ctx, *facultyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFacultyNotFound
		}
		return apperrors.NewOperationFailedError("Could not load faculty member", err)
	}
	if member.DepartmentID != course.DepartmentID {
		return apperrors.NewValidationError("Assigned faculty member must belong to the course's department")
	}
	return nil
}

// Create creates a subject under an existing course.
func (s *SubjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load course", err)
	}

	if err := checkSemester(req.Semester, course); err != nil {
		return nil, err
	}
	if err := s.checkFacultyAssignment(ctx, req.FacultyID, course); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:      req.Name,
		Code:      req.Code,
		CourseID:  req.CourseID,
		Semester:  req.Semester,
		Credits:   req.Credits,
		Type:      models.SubjectType(req.Type),
		FacultyID: req.FacultyID,
		Status:    models.StatusActive,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		if errors.Is(err, repositories.ErrSubjectAlreadyExists) {
			return nil, apperrors.NewConflictError("A subject with this code already exists in the course")
		}
		return nil, apperrors.NewOperationFailedError("Could not create subject", err)
	}
	return subject, nil
}

// GetByID retrieves a subject
func (s *SubjectService) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load subject", err)
	}
	return subject, nil
}

// List retrieves subjects filtered by course, department and/or status
func (s *SubjectService) List(ctx context.Context, courseID, departmentID int64, status models.EntityStatus) ([]*models.Subject, error) {
	subjects, err := s.subjects.List(ctx, courseID, departmentID, status)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list subjects", err)
	}
	return subjects, nil
}

// Update updates a subject. The semester stays bound to the owning
// course's total semester count.
func (s *SubjectService) Update(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, subject.CourseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load course", err)
	}

	if err := checkSemester(req.Semester, course); err != nil {
		return nil, err
	}
	if err := s.checkFacultyAssignment(ctx, req.FacultyID, course); err != nil {
		return nil, err
	}

	subject.Name = req.Name
	subject.Code = req.Code
	subject.Semester = req.Semester
	subject.Credits = req.Credits
	subject.Type = models.SubjectType(req.Type)
	subject.FacultyID = req.FacultyID

	if err := s.subjects.Update(ctx, subject); err != nil {
		if errors.Is(err, repositories.ErrSubjectAlreadyExists) {
			return nil, apperrors.NewConflictError("A subject with this code already exists in the course")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update subject", err)
	}
	return subject, nil
}

// Delete hard-deletes a subject.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrSubjectNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete subject", err)
	}
	return nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *SubjectService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := workflow.Toggle(subject.Status)
	if err := s.subjects.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrSubjectNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle subject status", err)
	}
	return next, nil
}
