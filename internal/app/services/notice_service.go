package services

import (
	"context"
	"errors"
	"time"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/events"
	"github.com/mertdogan/campusdesk/internal/pkg/helpers"
)

type noticeStore interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	List(ctx context.Context, filter repositories.NoticeListFilter) ([]*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}

// NoticeService handles notice business logic
type NoticeService struct {
	notices noticeStore
	emitter events.Emitter
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(notices noticeStore, emitter events.Emitter) *NoticeService {
	return &NoticeService{notices: notices, emitter: emitter}
}

func parseExpiry(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	expiry, err := helpers.ParseDate(*value)
	if err != nil {
		return nil, apperrors.NewValidationError("Expiry date must use the YYYY-MM-DD format")
	}
	return &expiry, nil
}

// Create posts a notice authored by the caller. The author's role, not
// the request, decides who will see it: faculty-authored notices reach
// students only, regardless of the stored target audience. The post is
// announced on the notification channel after the write commits.
func (s *NoticeService) Create(ctx context.Context, authorID int64, authorRole models.RoleType, req *dto.CreateNoticeRequest) (*models.Notice, error) {
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	notice := &models.Notice{
		Title:          req.Title,
		Content:        req.Content,
		TargetAudience: models.NoticeAudience(req.TargetAudience),
		Priority:       models.NoticePriority(req.Priority),
		IsImportant:    req.IsImportant,
		CreatedByID:    authorID,
		CreatedByRole:  authorRole,
		ExpiresAt:      expiresAt,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, apperrors.NewOperationFailedError("Could not create notice", err)
	}

	s.emitter.Emit(events.TopicPostNotice, notice)
	return notice, nil
}

// GetByID retrieves a notice the viewer is allowed to see.
func (s *NoticeService) GetByID(ctx context.Context, id int64, viewer models.RoleType) (*models.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load notice", err)
	}
	if !notice.VisibleTo(viewer) {
		return nil, apperrors.ErrNoticeNotFound
	}
	return notice, nil
}

// Feed returns the page of unexpired notices visible to the viewer's
// role. Visibility is evaluated at read time, so changing the rule never
// requires touching stored rows.
func (s *NoticeService) Feed(ctx context.Context, viewer models.RoleType, priority models.NoticePriority, importantOnly bool, page, size int) (*dto.NoticeListResponse, error) {
	all, err := s.notices.List(ctx, repositories.NoticeListFilter{
		Priority:      priority,
		ImportantOnly: importantOnly,
		ActiveAt:      time.Now(),
	})
	if err != nil {
		return nil, apperrors.NewOperationFailedError("Could not list notices", err)
	}

	visible := []*models.Notice{}
	for _, notice := range all {
		if notice.VisibleTo(viewer) {
			visible = append(visible, notice)
		}
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	start := int(offset)
	if start > len(visible) {
		start = len(visible)
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}

	return &dto.NoticeListResponse{
		Notices:        visible[start:end],
		PaginationInfo: helpers.NewPaginationInfo(int64(len(visible)), page, limit),
	}, nil
}

// Update edits a notice. Faculty can only edit their own notices; admins
// can edit any.
func (s *NoticeService) Update(ctx context.Context, id, actorID int64, actorRole models.RoleType, req *dto.CreateNoticeRequest) (*models.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not load notice", err)
	}
	if actorRole != models.RoleAdmin && notice.CreatedByID != actorID {
		return nil, apperrors.NewForbiddenError("Only the author or an admin can edit this notice")
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	notice.Title = req.Title
	notice.Content = req.Content
	notice.TargetAudience = models.NoticeAudience(req.TargetAudience)
	notice.Priority = models.NoticePriority(req.Priority)
	notice.IsImportant = req.IsImportant
	notice.ExpiresAt = expiresAt

	if err := s.notices.Update(ctx, notice); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, apperrors.NewOperationFailedError("Could not update notice", err)
	}
	return notice, nil
}

// Delete removes a notice under the same authorship rule as Update.
func (s *NoticeService) Delete(ctx context.Context, id, actorID int64, actorRole models.RoleType) error {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNoticeNotFound
		}
		return apperrors.NewOperationFailedError("Could not load notice", err)
	}
	if actorRole != models.RoleAdmin && notice.CreatedByID != actorID {
		return apperrors.NewForbiddenError("Only the author or an admin can delete this notice")
	}

	if err := s.notices.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNoticeNotFound
		}
		return apperrors.NewOperationFailedError("Could not delete notice", err)
	}
	return nil
}
