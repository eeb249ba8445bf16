package services

import (
	"context"
	"errors"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/auth"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
	"github.com/mertdogan/campusdesk/internal/pkg/validation"
	"github.com/mertdogan/campusdesk/internal/pkg/workflow"
)

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	List(ctx context.Context, filter repositories.StudentListFilter, offset uint64, limit int) ([]*models.Student, error)
	Count(ctx context.Context, filter repositories.StudentListFilter) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error
	Delete(ctx context.Context, id int64) error
}

type userAccountStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student enrollment business logic
type StudentService struct {
	students    studentStore
	users       userAccountStore
	courses     courseGetter
	departments departmentGetter
}

// NewStudentService creates a new StudentService
func NewStudentService(students studentStore, users userAccountStore, courses courseGetter, departments departmentGetter) *StudentService {
	return &StudentService{students: students, users: users, courses: courses, departments: departments}
}

// checkEnrollment validates the department/course/semester chain: the
// course must belong to the chosen department and the semester must sit
// within the course's bound.
func (s *StudentService) checkEnrollment(ctx context.Context, departmentID, courseID int64, semester int) error {
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return apperrors.NewOperationFailedError("Could not load department", err)
	}
	if department.Status != models.StatusActive {
		return apperrors.NewValidationError("Cannot enroll a student into an inactive department")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.NewOperationFailedError("Could not load course", err)
	}
	if course.DepartmentID != departmentID {
		return apperrors.NewValidationError("Selected course does not belong to the selected department")
	}

	return checkSemester(semester, course)
}

// Create enrolls a student: a login account plus the enrollment record.
// The account is removed again if the enrollment insert fails, so a
// half-created student never survives.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if msg := validation.ValidatePasswordStrength(req.Password); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}
	if !validation.CompiledPatterns.RollNo.MatchString(req.RollNo) {
		return nil, apperrors.NewValidationError("Roll number must be 2 to 20 uppercase letters or digits")
	}
	if err := s.checkEnrollment(ctx, req.DepartmentID, req.CourseID, req.Semester); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not create student", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Status:       models.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create student account", err)
	}

	student := &models.Student{
		UserID:       user.ID,
		RollNo:       req.RollNo,
		DepartmentID: req.DepartmentID,
		CourseID:     req.CourseID,
		Year:         req.Year,
		Semester:     req.Semester,
		Section:      req.Section,
		Status:       models.StatusActive,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			logger.Error().Err(delErr).Int64("userID", user.ID).Msg("Failed to clean up account after enrollment failure")
		}
		if errors.Is(err, repositories.ErrRollNoAlreadyExists) {
			return nil, apperrors.NewConflictError("A student with this roll number already exists")
		}
		return nil, apperrors.NewOperationFailedError("Could not create student", err)
	}

	student.User = user
	return student, nil
}

// GetByID retrieves a student with its account attached.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load student", err)
	}
	if user, err := s.users.GetByID(ctx, student.UserID); err == nil {
		student.User = user
	}
	return student, nil
}

// List retrieves a page of students matching the filter.
func (s *StudentService) List(ctx context.Context, filter repositories.StudentListFilter, page, size int) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	total, err := s.students.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not count students", err)
	}
	students, err := s.students.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list students", err)
	}

	return &dto.StudentListResponse{
		Students:       students,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update updates a student's enrollment fields. The department is fixed;
// the course may change within it.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEnrollment(ctx, student.DepartmentID, req.CourseID, req.Semester); err != nil {
		return nil, err
	}

	student.CourseID = req.CourseID
	student.Year = req.Year
	student.Semester = req.Semester
	student.Section = req.Section

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update student", err)
	}
	return student, nil
}

// ToggleStatus flips the active/inactive status and returns the new value.
func (s *StudentService) ToggleStatus(ctx context.Context, id int64) (models.EntityStatus, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrStudentNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not load student", err)
	}
	next := workflow.Toggle(student.Status)
	if err := s.students.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.ErrStudentNotFound
		}
		return "", apperrors.NewOperationFailedError("Could not toggle student status", err)
	}
	return next, nil
}

// Delete removes a student and its login account.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return apperrors.NewOperationFailedError("Could not load student", err)
	}

	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete student", err)
	}
	if err := s.users.Delete(ctx, student.UserID); err != nil {
		logger.Error().Err(err).Int64("userID", student.UserID).Msg("Failed to delete account for removed student")
	}
	return nil
}
