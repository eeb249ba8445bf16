package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/selector"
)

type fakeCourseStore struct {
	courses    map[int64]*models.Course
	order      []int64
	dependents map[int64]models.DependentCounts
	nextID     int64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:    map[int64]*models.Course{},
		dependents: map[int64]models.DependentCounts{},
		nextID:     1,
	}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	for _, c := range f.courses {
		if c.Code == course.Code {
			return repositories.ErrCourseAlreadyExists
		}
	}
	course.ID = f.nextID
	f.nextID++
	copied := *course
	f.courses[course.ID] = &copied
	f.order = append(f.order, course.ID)
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) List(_ context.Context, departmentID int64, status models.EntityStatus) ([]*models.Course, error) {
	result := []*models.Course{}
	for _, id := range f.order {
		course := f.courses[id]
		if departmentID != 0 && course.DepartmentID != departmentID {
			continue
		}
		if status != "" && course.Status != status {
			continue
		}
		copied := *course
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseStore) UpdateStatus(_ context.Context, id int64, status models.EntityStatus) error {
	course, ok := f.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	course.Status = status
	return nil
}

func (f *fakeCourseStore) CountDependents(_ context.Context, id int64) (models.DependentCounts, error) {
	return f.dependents[id], nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeDepartmentGetter struct {
	departments map[int64]*models.Department
}

func (f *fakeDepartmentGetter) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *department
	return &copied, nil
}

func courseServiceFixture() (*CourseService, *fakeCourseStore, *fakeDepartmentGetter) {
	store := newFakeCourseStore()
	departments := &fakeDepartmentGetter{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CSE", Status: models.StatusActive},
		2: {ID: 2, Name: "Ancient History", Code: "HIST", Status: models.StatusInactive},
	}}
	return NewCourseService(store, departments), store, departments
}

func TestCourseServiceCreate(t *testing.T) {
	t.Run("creates an active course", func(t *testing.T) {
		svc, _, _ := courseServiceFixture()

		course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name: "B.Tech CSE", Code: "BTCSE", DepartmentID: 1, DurationValue: 4, DurationUnit: "year",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, course.Status)
		assert.Equal(t, 8, course.TotalSemesters())
	})

	t.Run("duration bound depends on unit", func(t *testing.T) {
		svc, _, _ := courseServiceFixture()

		_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name: "Endless", Code: "LONG", DepartmentID: 1, DurationValue: 7, DurationUnit: "year",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name: "Long but fine", Code: "LONG", DepartmentID: 1, DurationValue: 12, DurationUnit: "semester",
		})
		assert.NoError(t, err)
	})

	t.Run("inactive department refuses new courses", func(t *testing.T) {
		svc, _, _ := courseServiceFixture()

		_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name: "Archaeology", Code: "ARCH", DepartmentID: 2, DurationValue: 3, DurationUnit: "year",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown department", func(t *testing.T) {
		svc, _, _ := courseServiceFixture()

		_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
			Name: "Nowhere", Code: "NW", DepartmentID: 42, DurationValue: 3, DurationUnit: "year",
		})
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})
}

func TestCourseServiceOptions(t *testing.T) {
	svc, store, _ := courseServiceFixture()

	btech, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name: "B.Tech CSE", Code: "BTCSE", DepartmentID: 1, DurationValue: 4, DurationUnit: "year",
	})
	require.NoError(t, err)
	mtech, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name: "M.Tech CSE", Code: "MTCSE", DepartmentID: 1, DurationValue: 4, DurationUnit: "semester",
	})
	require.NoError(t, err)
	require.NoError(t, store.UpdateStatus(context.Background(), mtech.ID, models.StatusInactive))

	options, err := svc.Options(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, options, 1, "inactive courses must not be offered")
	assert.Equal(t, btech.ID, options[0].ID)
	assert.Equal(t, "B.Tech CSE", options[0].Label)
	assert.Equal(t, 8, options[0].TotalSemesters)

	options, err = svc.Options(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, options, "unknown department yields an empty option set, not an error")
}

func TestCourseServiceSemesterBound(t *testing.T) {
	svc, _, _ := courseServiceFixture()

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name: "B.Tech CSE", Code: "BTCSE", DepartmentID: 1, DurationValue: 4, DurationUnit: "year",
	})
	require.NoError(t, err)

	bound, err := svc.SemesterBound(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, bound)

	bound, err = svc.SemesterBound(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, selector.DefaultMaxSemesters, bound)

	_, err = svc.SemesterBound(context.Background(), 4242)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseServiceDelete(t *testing.T) {
	svc, store, _ := courseServiceFixture()

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name: "B.Tech CSE", Code: "BTCSE", DepartmentID: 1, DurationValue: 4, DurationUnit: "year",
	})
	require.NoError(t, err)

	store.dependents[course.ID] = models.DependentCounts{Subjects: 5}
	assert.ErrorIs(t, svc.Delete(context.Background(), course.ID), apperrors.ErrDependencyConflict)

	store.dependents[course.ID] = models.DependentCounts{}
	assert.NoError(t, svc.Delete(context.Background(), course.ID))
}
