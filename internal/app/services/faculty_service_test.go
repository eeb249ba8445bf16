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

type fakeFacultyStore struct {
	members   map[int64]*models.FacultyMember
	nextID    int64
	createErr error
}

func newFakeFacultyStore() *fakeFacultyStore {
	return &fakeFacultyStore{members: map[int64]*models.FacultyMember{}, nextID: 1}
}

func (f *fakeFacultyStore) Create(_ context.Context, faculty *models.FacultyMember) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, m := range f.members {
		if m.EmployeeID == faculty.EmployeeID {
			return repositories.ErrEmployeeIDAlreadyExists
		}
	}
	faculty.ID = f.nextID
	f.nextID++
	copied := *faculty
	f.members[faculty.ID] = &copied
	return nil
}

func (f *fakeFacultyStore) GetByID(_ context.Context, id int64) (*models.FacultyMember, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (f *fakeFacultyStore) GetByUserID(_ context.Context, userID int64) (*models.FacultyMember, error) {
	for _, member := range f.members {
		if member.UserID == userID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeFacultyStore) List(_ context.Context, departmentID int64, status models.EntityStatus) ([]*models.FacultyMember, error) {
	result := []*models.FacultyMember{}
	for _, member := range f.members {
		if departmentID != 0 && member.DepartmentID != departmentID {
			continue
		}
		if status != "" && member.Status != status {
			continue
		}
		copied := *member
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeFacultyStore) Update(_ context.Context, faculty *models.FacultyMember) error {
	if _, ok := f.members[faculty.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *faculty
	f.members[faculty.ID] = &copied
	return nil
}

func (f *fakeFacultyStore) UpdateStatus(_ context.Context, id int64, status models.EntityStatus) error {
	member, ok := f.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	member.Status = status
	return nil
}

func (f *fakeFacultyStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.members[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

// fakeSubjectLister keys subjects by department so the assignment check
// actually exercises the department filter.
type fakeSubjectLister struct {
	byDepartment map[int64][]*models.Subject
}

func (f *fakeSubjectLister) List(_ context.Context, _, departmentID int64, _ models.EntityStatus) ([]*models.Subject, error) {
	return f.byDepartment[departmentID], nil
}

func facultyServiceFixture() (*FacultyService, *fakeFacultyStore, *fakeUserAccountStore) {
	faculty := newFakeFacultyStore()
	users := newFakeUserAccountStore()
	departments := &fakeDepartmentGetter{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CSE", Status: models.StatusActive},
		3: {ID: 3, Name: "Closed", Code: "OLD", Status: models.StatusInactive},
	}}
	subjects := &fakeSubjectLister{byDepartment: map[int64][]*models.Subject{
		1: {
			{ID: 100, Name: "Data Structures", CourseID: 1},
			{ID: 101, Name: "Operating Systems", CourseID: 1},
		},
		2: {
			{ID: 200, Name: "Medieval History", CourseID: 2},
		},
	}}
	return NewFacultyService(faculty, users, departments, subjects), faculty, users
}

func validFacultyRequest() *dto.CreateFacultyRequest {
	return &dto.CreateFacultyRequest{
		Name:         "Ravi Iyer",
		Email:        "ravi@example.edu",
		Password:     "sturdyPass1",
		EmployeeID:   "EMP042",
		DepartmentID: 1,
		Designation:  "Assistant Professor",
		SubjectIDs:   []int64{100, 101},
	}
}

func TestFacultyServiceCreate(t *testing.T) {
	t.Run("creates account and staff record", func(t *testing.T) {
		svc, _, users := facultyServiceFixture()

		member, err := svc.Create(context.Background(), validFacultyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, member.Status)
		assert.Equal(t, []int64{100, 101}, member.SubjectIDs)
		require.NotNil(t, member.User)
		assert.Equal(t, models.RoleFaculty, member.User.Role)
		assert.NotEqual(t, "sturdyPass1", member.User.PasswordHash)
		assert.Len(t, users.users, 1)
	})

	t.Run("weak password", func(t *testing.T) {
		svc, _, _ := facultyServiceFixture()
		req := validFacultyRequest()
		req.Password = "short"

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("inactive department", func(t *testing.T) {
		svc, _, _ := facultyServiceFixture()
		req := validFacultyRequest()
		req.DepartmentID = 3

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown department", func(t *testing.T) {
		svc, _, _ := facultyServiceFixture()
		req := validFacultyRequest()
		req.DepartmentID = 99

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})

	t.Run("subject from another department", func(t *testing.T) {
		svc, _, users := facultyServiceFixture()
		req := validFacultyRequest()
		req.SubjectIDs = []int64{100, 200}

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Empty(t, users.users, "assignment check must resolve before any write")
	})

	t.Run("staff insert failure removes the fresh account", func(t *testing.T) {
		svc, faculty, users := facultyServiceFixture()
		faculty.createErr = errors.New("insert failed")

		_, err := svc.Create(context.Background(), validFacultyRequest())
		require.Error(t, err)
		assert.Empty(t, users.users, "half-created faculty member must not survive")
		assert.Len(t, users.deleted, 1)
	})

	t.Run("duplicate employee id conflicts", func(t *testing.T) {
		svc, _, users := facultyServiceFixture()

		_, err := svc.Create(context.Background(), validFacultyRequest())
		require.NoError(t, err)

		req := validFacultyRequest()
		req.Email = "other@example.edu"
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Len(t, users.users, 1, "second account must be compensated away")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _, _ := facultyServiceFixture()

		_, err := svc.Create(context.Background(), validFacultyRequest())
		require.NoError(t, err)

		req := validFacultyRequest()
		req.EmployeeID = "EMP043"
		_, err = svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestFacultyServiceUpdate(t *testing.T) {
	svc, _, _ := facultyServiceFixture()
	member, err := svc.Create(context.Background(), validFacultyRequest())
	require.NoError(t, err)

	t.Run("rejects subjects outside the department", func(t *testing.T) {
		_, err := svc.Update(context.Background(), member.ID, &dto.UpdateFacultyRequest{
			Designation: "Professor",
			SubjectIDs:  []int64{200},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("applies designation and assignments", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), member.ID, &dto.UpdateFacultyRequest{
			Designation: "Professor",
			SubjectIDs:  []int64{101},
		})
		require.NoError(t, err)
		assert.Equal(t, "Professor", updated.Designation)
		assert.Equal(t, []int64{101}, updated.SubjectIDs)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999, &dto.UpdateFacultyRequest{Designation: "Professor"})
		assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
	})
}

func TestFacultyServiceToggleStatus(t *testing.T) {
	svc, _, _ := facultyServiceFixture()
	member, err := svc.Create(context.Background(), validFacultyRequest())
	require.NoError(t, err)

	status, err := svc.ToggleStatus(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, status)

	status, err = svc.ToggleStatus(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, status)
}

func TestFacultyServiceDelete(t *testing.T) {
	svc, faculty, users := facultyServiceFixture()
	member, err := svc.Create(context.Background(), validFacultyRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), member.ID))
	assert.Empty(t, faculty.members)
	assert.Empty(t, users.users, "login account is removed with the member")

	assert.ErrorIs(t, svc.Delete(context.Background(), member.ID), apperrors.ErrFacultyNotFound)
}
