package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	students  map[int64]*models.Student
	nextID    int64
	createErr error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[int64]*models.Student{}, nextID: 1}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, s := range f.students {
		if s.RollNo == student.RollNo {
			return repositories.ErrRollNoAlreadyExists
		}
	}
	student.ID = f.nextID
	f.nextID++
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range f.students {
		if student.UserID == userID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStudentStore) List(_ context.Context, filter repositories.StudentListFilter, _ uint64, _ int) ([]*models.Student, error) {
	result := []*models.Student{}
	for _, student := range f.students {
		if filter.DepartmentID != 0 && student.DepartmentID != filter.DepartmentID {
			continue
		}
		copied := *student
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeStudentStore) Count(_ context.Context, filter repositories.StudentListFilter) (int64, error) {
	students, _ := f.List(context.Background(), filter, 0, 0)
	return int64(len(students)), nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) UpdateStatus(_ context.Context, id int64, status models.EntityStatus) error {
	student, ok := f.students[id]
	if !ok {
		return repositories.ErrNotFound
	}
	student.Status = status
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeUserAccountStore struct {
	users   map[int64]*models.User
	nextID  int64
	deleted []int64
}

func newFakeUserAccountStore() *fakeUserAccountStore {
	return &fakeUserAccountStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserAccountStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserAccountStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserAccountStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func studentServiceFixture() (*StudentService, *fakeStudentStore, *fakeUserAccountStore) {
	students := newFakeStudentStore()
	users := newFakeUserAccountStore()
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		1: {ID: 1, Name: "B.Tech CSE", DepartmentID: 1, DurationValue: 4, DurationUnit: models.DurationYear, Status: models.StatusActive},
		2: {ID: 2, Name: "B.A. History", DepartmentID: 2, DurationValue: 3, DurationUnit: models.DurationYear, Status: models.StatusActive},
	}}
	departments := &fakeDepartmentGetter{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CSE", Status: models.StatusActive},
		2: {ID: 2, Name: "History", Code: "HIST", Status: models.StatusActive},
		3: {ID: 3, Name: "Closed", Code: "OLD", Status: models.StatusInactive},
	}}
	return NewStudentService(students, users, courses, departments), students, users
}

func validStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Name:         "Asha Verma",
		Email:        "asha@example.edu",
		Password:     "sturdyPass1",
		RollNo:       "CS2021001",
		DepartmentID: 1,
		CourseID:     1,
		Year:         3,
		Semester:     5,
		Section:      "A",
	}
}

func TestStudentServiceCreate(t *testing.T) {
	t.Run("creates account and enrollment", func(t *testing.T) {
		svc, _, users := studentServiceFixture()

		student, err := svc.Create(context.Background(), validStudentRequest())
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, student.Status)
		require.NotNil(t, student.User)
		assert.Equal(t, models.RoleStudent, student.User.Role)
		assert.NotEqual(t, "sturdyPass1", student.User.PasswordHash)
		assert.Len(t, users.users, 1)
	})

	t.Run("weak password", func(t *testing.T) {
		svc, _, _ := studentServiceFixture()
		req := validStudentRequest()
		req.Password = "short"

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("bad roll number format", func(t *testing.T) {
		svc, _, _ := studentServiceFixture()
		req := validStudentRequest()
		req.RollNo = "cs-2021"

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("course outside the department", func(t *testing.T) {
		svc, _, users := studentServiceFixture()
		req := validStudentRequest()
		req.CourseID = 2

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Empty(t, users.users, "validation must resolve before any write")
	})

	t.Run("inactive department", func(t *testing.T) {
		svc, _, _ := studentServiceFixture()
		req := validStudentRequest()
		req.DepartmentID = 3

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("semester beyond course bound", func(t *testing.T) {
		svc, _, _ := studentServiceFixture()
		req := validStudentRequest()
		req.Semester = 9

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("enrollment failure removes the fresh account", func(t *testing.T) {
		svc, students, users := studentServiceFixture()
		students.createErr = errors.New("insert failed")

		_, err := svc.Create(context.Background(), validStudentRequest())
		require.Error(t, err)
		assert.Empty(t, users.users, "half-created student must not survive")
		assert.Len(t, users.deleted, 1)
	})

	t.Run("duplicate roll number conflicts", func(t *testing.T) {
		svc, _, users := studentServiceFixture()

		_, err := svc.Create(context.Background(), validStudentRequest())
		require.NoError(t, err)

		req := validStudentRequest()
		req.Email = "other@example.edu"
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Len(t, users.users, 1, "second account must be compensated away")
	})
}

func TestStudentServiceUpdate(t *testing.T) {
	svc, _, _ := studentServiceFixture()
	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	t.Run("department stays fixed, course may change within it", func(t *testing.T) {
		_, err := svc.Update(context.Background(), student.ID, &dto.UpdateStudentRequest{
			CourseID: 2, Year: 3, Semester: 5, Section: "A",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "course from another department")

		updated, err := svc.Update(context.Background(), student.ID, &dto.UpdateStudentRequest{
			CourseID: 1, Year: 4, Semester: 7, Section: "B",
		})
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Semester)
		assert.Equal(t, "B", updated.Section)
	})
}

func TestStudentServiceDelete(t *testing.T) {
	svc, students, users := studentServiceFixture()
	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), student.ID))
	assert.Empty(t, students.students)
	assert.Empty(t, users.users, "login account is removed with the student")
}
