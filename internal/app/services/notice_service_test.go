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

type fakeNoticeStore struct {
	notices map[int64]*models.Notice
	order   []int64
	nextID  int64
}

func newFakeNoticeStore() *fakeNoticeStore {
	return &fakeNoticeStore{notices: map[int64]*models.Notice{}, nextID: 1}
}

func (f *fakeNoticeStore) Create(_ context.Context, notice *models.Notice) error {
	notice.ID = f.nextID
	notice.CreatedAt = time.Now()
	f.nextID++
	copied := *notice
	f.notices[notice.ID] = &copied
	f.order = append(f.order, notice.ID)
	return nil
}

func (f *fakeNoticeStore) GetByID(_ context.Context, id int64) (*models.Notice, error) {
	notice, ok := f.notices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *notice
	return &copied, nil
}

func (f *fakeNoticeStore) List(_ context.Context, filter repositories.NoticeListFilter) ([]*models.Notice, error) {
	result := []*models.Notice{}
	for _, id := range f.order {
		notice := f.notices[id]
		if filter.Priority != "" && notice.Priority != filter.Priority {
			continue
		}
		if filter.ImportantOnly && !notice.IsImportant {
			continue
		}
		if !filter.ActiveAt.IsZero() && notice.Expired(filter.ActiveAt) {
			continue
		}
		copied := *notice
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeNoticeStore) Update(_ context.Context, notice *models.Notice) error {
	if _, ok := f.notices[notice.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *notice
	f.notices[notice.ID] = &copied
	return nil
}

func (f *fakeNoticeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.notices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.notices, id)
	return nil
}

func noticeRequest(audience string) *dto.CreateNoticeRequest {
	return &dto.CreateNoticeRequest{
		Title:          "Mid-term schedule",
		Content:        "The mid-term examinations start next Monday.",
		TargetAudience: audience,
		Priority:       "high",
	}
}

func TestNoticeServiceCreate(t *testing.T) {
	t.Run("announces the post after the write", func(t *testing.T) {
		store := newFakeNoticeStore()
		emitter := &fakeEmitter{}
		svc := NewNoticeService(store, emitter)

		notice, err := svc.Create(context.Background(), 1, models.RoleAdmin, noticeRequest("all"))
		require.NoError(t, err)
		assert.NotZero(t, notice.ID)
		assert.Equal(t, []string{"post-notice"}, emitter.emitted())
	})

	t.Run("rejects a malformed expiry date", func(t *testing.T) {
		svc := NewNoticeService(newFakeNoticeStore(), &fakeEmitter{})
		req := noticeRequest("all")
		bad := "next week"
		req.ExpiresAt = &bad

		_, err := svc.Create(context.Background(), 1, models.RoleAdmin, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestNoticeVisibility(t *testing.T) {
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, &fakeEmitter{})

	// Admin posts for faculty; faculty posts reach students only.
	adminNotice, err := svc.Create(context.Background(), 1, models.RoleAdmin, noticeRequest("faculty"))
	require.NoError(t, err)
	facultyNotice, err := svc.Create(context.Background(), 2, models.RoleFaculty, noticeRequest("all"))
	require.NoError(t, err)

	t.Run("faculty-authored notices reach students only", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), facultyNotice.ID, models.RoleStudent)
		assert.NoError(t, err)

		_, err = svc.GetByID(context.Background(), facultyNotice.ID, models.RoleFaculty)
		assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
	})

	t.Run("admin-authored notices follow the stored audience", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), adminNotice.ID, models.RoleFaculty)
		assert.NoError(t, err)

		_, err = svc.GetByID(context.Background(), adminNotice.ID, models.RoleStudent)
		assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
	})

	t.Run("feed filters by viewer role", func(t *testing.T) {
		feed, err := svc.Feed(context.Background(), models.RoleStudent, "", false, 1, 10)
		require.NoError(t, err)
		require.Len(t, feed.Notices, 1)
		assert.Equal(t, facultyNotice.ID, feed.Notices[0].ID)

		feed, err = svc.Feed(context.Background(), models.RoleFaculty, "", false, 1, 10)
		require.NoError(t, err)
		require.Len(t, feed.Notices, 1)
		assert.Equal(t, adminNotice.ID, feed.Notices[0].ID)
	})
}

func TestNoticeFeedSkipsExpired(t *testing.T) {
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, &fakeEmitter{})

	expired := time.Now().AddDate(0, 0, -1)
	store.Create(context.Background(), &models.Notice{
		Title: "Old", Content: "gone", TargetAudience: models.AudienceAll,
		Priority: models.PriorityLow, CreatedByID: 1, CreatedByRole: models.RoleAdmin,
		ExpiresAt: &expired,
	})
	_, err := svc.Create(context.Background(), 1, models.RoleAdmin, noticeRequest("all"))
	require.NoError(t, err)

	feed, err := svc.Feed(context.Background(), models.RoleStudent, "", false, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.Notices, 1)
	assert.Equal(t, "Mid-term schedule", feed.Notices[0].Title)
}

func TestNoticeAuthorship(t *testing.T) {
	setup := func() (*NoticeService, int64) {
		svc := NewNoticeService(newFakeNoticeStore(), &fakeEmitter{})
		notice, err := svc.Create(context.Background(), 2, models.RoleFaculty, noticeRequest("all"))
		require.NoError(t, err)
		return svc, notice.ID
	}

	t.Run("author can edit", func(t *testing.T) {
		svc, id := setup()
		req := noticeRequest("all")
		req.Title = "Updated schedule"

		updated, err := svc.Update(context.Background(), id, 2, models.RoleFaculty, req)
		require.NoError(t, err)
		assert.Equal(t, "Updated schedule", updated.Title)
	})

	t.Run("another faculty member cannot edit", func(t *testing.T) {
		svc, id := setup()
		_, err := svc.Update(context.Background(), id, 3, models.RoleFaculty, noticeRequest("all"))
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin can delete any notice", func(t *testing.T) {
		svc, id := setup()
		assert.NoError(t, svc.Delete(context.Background(), id, 1, models.RoleAdmin))
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		svc, id := setup()
		err := svc.Delete(context.Background(), id, 3, models.RoleFaculty)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
