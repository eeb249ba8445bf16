package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mertdogan/campusdesk/internal/app/models"
)

// Notice error types
var ErrNoticeNotFound = ErrNotFound

// NoticeListFilter narrows a notice listing. Audience visibility is a
// read-time rule evaluated in the service layer, not here.
type NoticeListFilter struct {
	Priority      models.NoticePriority
	ImportantOnly bool
	ActiveAt      time.Time
}

// NoticeRepository handles notice database operations
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const noticeColumns = "id, title, content, target_audience, priority, is_important, created_by_id, created_by_role, expires_at, created_at"

func scanNotice(row pgx.Row) (*models.Notice, error) {
	notice := &models.Notice{}
	err := row.Scan(&notice.ID, &notice.Title, &notice.Content, &notice.TargetAudience,
		&notice.Priority, &notice.IsImportant, &notice.CreatedByID, &notice.CreatedByRole,
		&notice.ExpiresAt, &notice.CreatedAt)
	if err != nil {
		return nil, err
	}
	return notice, nil
}

// Create creates a new notice
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "content", "target_audience", "priority", "is_important",
			"created_by_id", "created_by_role", "expires_at").
		Values(notice.Title, notice.Content, notice.TargetAudience, notice.Priority,
			notice.IsImportant, notice.CreatedByID, notice.CreatedByRole, notice.ExpiresAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notice query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&notice.ID, &notice.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notice: %w", err)
	}
	return nil
}

// GetByID retrieves a notice by ID
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}

	notice, err := scanNotice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, fmt.Errorf("error getting notice by ID: %w", err)
	}
	return notice, nil
}

// List retrieves notices matching the filter, newest first. Important
// notices sort ahead of the rest.
func (r *NoticeRepository) List(ctx context.Context, filter NoticeListFilter) ([]*models.Notice, error) {
	builder := r.sb.Select(noticeColumns).
		From("notices").
		OrderBy("is_important DESC", "created_at DESC")
	if filter.Priority != "" {
		builder = builder.Where(squirrel.Eq{"priority": filter.Priority})
	}
	if filter.ImportantOnly {
		builder = builder.Where(squirrel.Eq{"is_important": true})
	}
	if !filter.ActiveAt.IsZero() {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"expires_at": nil},
			squirrel.Gt{"expires_at": filter.ActiveAt},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notices: %w", err)
	}
	defer rows.Close()

	notices := []*models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, notice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notice rows: %w", err)
	}
	return notices, nil
}

// Update updates the editable fields of an existing notice.
func (r *NoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Update("notices").
		SetMap(map[string]interface{}{
			"title":           notice.Title,
			"content":         notice.Content,
			"target_audience": notice.TargetAudience,
			"priority":        notice.Priority,
			"is_important":    notice.IsImportant,
			"expires_at":      notice.ExpiresAt,
		}).
		Where(squirrel.Eq{"id": notice.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update notice query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating notice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNoticeNotFound
	}
	return nil
}

// Delete deletes a notice by ID.
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notice query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting notice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
