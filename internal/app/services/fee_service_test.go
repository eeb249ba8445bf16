package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

type fakeFeeStore struct {
	fees   map[int64]*models.Fee
	nextID int64
}

func newFakeFeeStore() *fakeFeeStore {
	return &fakeFeeStore{fees: map[int64]*models.Fee{}, nextID: 1}
}

func (f *fakeFeeStore) Create(_ context.Context, fee *models.Fee) error {
	fee.ID = f.nextID
	fee.CreatedAt = time.Now()
	f.nextID++
	copied := *fee
	f.fees[fee.ID] = &copied
	return nil
}

func (f *fakeFeeStore) GetByID(_ context.Context, id int64) (*models.Fee, error) {
	fee, ok := f.fees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *fee
	return &copied, nil
}

func (f *fakeFeeStore) List(_ context.Context, studentID int64, status models.FeeStatus) ([]*models.Fee, error) {
	result := []*models.Fee{}
	for _, fee := range f.fees {
		if studentID != 0 && fee.StudentID != studentID {
			continue
		}
		if status != "" && fee.Status != status {
			continue
		}
		copied := *fee
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeFeeStore) MarkPaid(_ context.Context, id int64, paidAt time.Time) error {
	fee, ok := f.fees[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if fee.Status == models.FeePaid {
		return repositories.ErrFeeAlreadyPaid
	}
	fee.Status = models.FeePaid
	fee.PaidAt = &paidAt
	return nil
}

func (f *fakeFeeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.fees[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.fees, id)
	return nil
}

type fakeStudentGetter struct {
	students map[int64]*models.Student
}

func (f *fakeStudentGetter) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentGetter) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range f.students {
		if student.UserID == userID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func feeServiceFixture() (*FeeService, *fakeFeeStore) {
	store := newFakeFeeStore()
	students := &fakeStudentGetter{students: map[int64]*models.Student{
		1: {ID: 1, UserID: 7, RollNo: "CS2021001"},
	}}
	return NewFeeService(store, students), store
}

func TestFeeServiceCreate(t *testing.T) {
	t.Run("creates an unpaid record", func(t *testing.T) {
		svc, _ := feeServiceFixture()

		fee, err := svc.Create(context.Background(), &dto.CreateFeeRequest{
			StudentID: 1, FeeType: "tuition", Amount: 1250.50, DueDate: "2026-09-15",
		})
		require.NoError(t, err)
		assert.Equal(t, models.FeeUnpaid, fee.Status)
		assert.Nil(t, fee.PaidAt)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, _ := feeServiceFixture()

		_, err := svc.Create(context.Background(), &dto.CreateFeeRequest{
			StudentID: 42, FeeType: "tuition", Amount: 100, DueDate: "2026-09-15",
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("malformed due date", func(t *testing.T) {
		svc, _ := feeServiceFixture()

		_, err := svc.Create(context.Background(), &dto.CreateFeeRequest{
			StudentID: 1, FeeType: "tuition", Amount: 100, DueDate: "15/09/2026",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestFeeServiceMarkPaid(t *testing.T) {
	svc, _ := feeServiceFixture()
	fee, err := svc.Create(context.Background(), &dto.CreateFeeRequest{
		StudentID: 1, FeeType: "tuition", Amount: 1250.50, DueDate: "2026-09-15",
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	// Settling twice fails and keeps the original payment time.
	_, err = svc.MarkPaid(context.Background(), fee.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	stored, err := svc.GetByID(context.Background(), fee.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaidAt)
	assert.Equal(t, firstPaidAt, *stored.PaidAt)
}

func TestFeeServiceMyFees(t *testing.T) {
	svc, _ := feeServiceFixture()
	_, err := svc.Create(context.Background(), &dto.CreateFeeRequest{
		StudentID: 1, FeeType: "tuition", Amount: 1250.50, DueDate: "2026-09-15",
	})
	require.NoError(t, err)

	fees, err := svc.MyFees(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, fees, 1)

	_, err = svc.MyFees(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
