package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

// fakeEmitter records emitted events for assertions.
type fakeEmitter struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakeEmitter) Emit(topic string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
}

func (f *fakeEmitter) emitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.topics...)
}

type fakeLeaveStore struct {
	leaves    map[int64]*models.LeaveRequest
	nextID    int64
	decideErr error
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{leaves: map[int64]*models.LeaveRequest{}, nextID: 1}
}

func (f *fakeLeaveStore) Create(_ context.Context, leave *models.LeaveRequest) error {
	leave.ID = f.nextID
	leave.CreatedAt = time.Now()
	f.nextID++
	copied := *leave
	f.leaves[leave.ID] = &copied
	return nil
}

func (f *fakeLeaveStore) GetByID(_ context.Context, id int64) (*models.LeaveRequest, error) {
	leave, ok := f.leaves[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *leave
	return &copied, nil
}

func (f *fakeLeaveStore) List(_ context.Context, filter repositories.LeaveListFilter) ([]*models.LeaveRequest, error) {
	result := []*models.LeaveRequest{}
	for _, leave := range f.leaves {
		if filter.ApplicantID != 0 && leave.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.Status != "" && leave.Status != filter.Status {
			continue
		}
		copied := *leave
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeLeaveStore) UpdateDecision(_ context.Context, id int64, status models.LeaveStatus, remarks string, decidedByID int64, decidedAt time.Time) error {
	if f.decideErr != nil {
		return f.decideErr
	}
	leave, ok := f.leaves[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if leave.Status != models.LeavePending {
		return repositories.ErrLeaveAlreadyDecided
	}
	leave.Status = status
	leave.Remarks = remarks
	leave.DecidedByID = &decidedByID
	leave.DecidedAt = &decidedAt
	return nil
}

func (f *fakeLeaveStore) Stats(_ context.Context) (*models.LeaveStats, error) {
	stats := &models.LeaveStats{}
	for _, leave := range f.leaves {
		stats.Total++
		switch leave.Status {
		case models.LeavePending:
			stats.Pending++
		case models.LeaveApproved:
			stats.Approved++
		case models.LeaveRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (f *fakeLeaveStore) CountByType(_ context.Context) ([]models.LeaveTypeCount, error) {
	counts := map[string]int64{}
	for _, leave := range f.leaves {
		counts[leave.LeaveType]++
	}
	result := []models.LeaveTypeCount{}
	for leaveType, count := range counts {
		result = append(result, models.LeaveTypeCount{LeaveType: leaveType, Count: count})
	}
	return result, nil
}

func validApplyRequest() *dto.ApplyLeaveRequest {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dayAfter := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	return &dto.ApplyLeaveRequest{
		LeaveType: "sick",
		FromDate:  tomorrow,
		ToDate:    dayAfter,
		Reason:    "recovering from a fever at home",
	}
}

func TestLeaveServiceApply(t *testing.T) {
	t.Run("creates a pending request", func(t *testing.T) {
		store := newFakeLeaveStore()
		svc := NewLeaveService(store, &fakeEmitter{})

		leave, err := svc.Apply(context.Background(), 7, models.RoleStudent, validApplyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.LeavePending, leave.Status)
		assert.Equal(t, int64(7), leave.ApplicantID)
		assert.Equal(t, models.RoleStudent, leave.ApplicantRole)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		svc := NewLeaveService(newFakeLeaveStore(), &fakeEmitter{})
		req := validApplyRequest()
		req.FromDate = "01-02-2026"

		_, err := svc.Apply(context.Background(), 7, models.RoleStudent, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects a past start date", func(t *testing.T) {
		svc := NewLeaveService(newFakeLeaveStore(), &fakeEmitter{})
		req := validApplyRequest()
		req.FromDate = time.Now().AddDate(0, 0, -3).Format("2006-01-02")

		_, err := svc.Apply(context.Background(), 7, models.RoleStudent, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects a short reason", func(t *testing.T) {
		svc := NewLeaveService(newFakeLeaveStore(), &fakeEmitter{})
		req := validApplyRequest()
		req.Reason = "sick"

		_, err := svc.Apply(context.Background(), 7, models.RoleStudent, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLeaveServiceDecide(t *testing.T) {
	setup := func() (*LeaveService, *fakeLeaveStore, *fakeEmitter, int64) {
		store := newFakeLeaveStore()
		emitter := &fakeEmitter{}
		svc := NewLeaveService(store, emitter)
		leave, err := svc.Apply(context.Background(), 7, models.RoleStudent, validApplyRequest())
		require.NoError(t, err)
		return svc, store, emitter, leave.ID
	}

	t.Run("approve stamps decider and time", func(t *testing.T) {
		svc, _, emitter, id := setup()

		decided, err := svc.Approve(context.Background(), id, 99, "enjoy your rest")
		require.NoError(t, err)
		assert.Equal(t, models.LeaveApproved, decided.Status)
		require.NotNil(t, decided.DecidedByID)
		assert.Equal(t, int64(99), *decided.DecidedByID)
		assert.NotNil(t, decided.DecidedAt)
		assert.Equal(t, []string{"leave-status"}, emitter.emitted())
	})

	t.Run("reject requires remarks", func(t *testing.T) {
		svc, _, emitter, id := setup()

		_, err := svc.Reject(context.Background(), id, 99, "")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Empty(t, emitter.emitted(), "no event on a failed decision")
	})

	t.Run("second decision fails and changes nothing", func(t *testing.T) {
		svc, store, _, id := setup()

		_, err := svc.Approve(context.Background(), id, 99, "")
		require.NoError(t, err)

		_, err = svc.Reject(context.Background(), id, 100, "changed my mind")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

		stored, err := store.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.LeaveApproved, stored.Status)
		assert.Equal(t, int64(99), *stored.DecidedByID)
	})

	t.Run("concurrent decision race surfaces as invalid transition", func(t *testing.T) {
		svc, store, emitter, id := setup()
		store.decideErr = repositories.ErrLeaveAlreadyDecided

		_, err := svc.Approve(context.Background(), id, 99, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Empty(t, emitter.emitted())
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, _, _, _ := setup()
		_, err := svc.Approve(context.Background(), 4242, 99, "")
		assert.ErrorIs(t, err, apperrors.ErrLeaveNotFound)
	})
}

func TestLeaveServiceGetByID(t *testing.T) {
	store := newFakeLeaveStore()
	svc := NewLeaveService(store, &fakeEmitter{})
	leave, err := svc.Apply(context.Background(), 7, models.RoleStudent, validApplyRequest())
	require.NoError(t, err)

	t.Run("applicant sees own request", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), leave.ID, 7, models.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, leave.ID, got.ID)
	})

	t.Run("other students cannot see it", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), leave.ID, 8, models.RoleStudent)
		assert.ErrorIs(t, err, apperrors.ErrLeaveNotFound)
	})

	t.Run("reviewers see all", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), leave.ID, 8, models.RoleFaculty)
		assert.NoError(t, err)
	})
}

func TestLeaveServiceStats(t *testing.T) {
	store := newFakeLeaveStore()
	svc := NewLeaveService(store, &fakeEmitter{})

	for i := 0; i < 3; i++ {
		_, err := svc.Apply(context.Background(), int64(i+1), models.RoleStudent, validApplyRequest())
		require.NoError(t, err)
	}
	_, err := svc.Approve(context.Background(), 1, 99, "")
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), 2, 99, "coverage gap on those dates")
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Pending)
	assert.EqualValues(t, 1, stats.Approved)
	assert.EqualValues(t, 1, stats.Rejected)
}
