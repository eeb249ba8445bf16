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

// Leave error types
var (
	ErrLeaveNotFound       = ErrNotFound
	ErrLeaveAlreadyDecided = errors.New("leave request has already been decided")
)

// LeaveListFilter narrows a leave request listing.
type LeaveListFilter struct {
	ApplicantID   int64
	ApplicantRole models.RoleType
	Status        models.LeaveStatus
	LeaveType     string
}

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const leaveColumns = "id, applicant_id, applicant_role, leave_type, from_date, to_date, reason, status, remarks, decided_by_id, decided_at, created_at"

func scanLeave(row pgx.Row) (*models.LeaveRequest, error) {
	leave := &models.LeaveRequest{}
	err := row.Scan(&leave.ID, &leave.ApplicantID, &leave.ApplicantRole, &leave.LeaveType,
		&leave.FromDate, &leave.ToDate, &leave.Reason, &leave.Status, &leave.Remarks,
		&leave.DecidedByID, &leave.DecidedAt, &leave.CreatedAt)
	if err != nil {
		return nil, err
	}
	return leave, nil
}

// Create creates a new leave request
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	sql, args, err := r.sb.Insert("leave_requests").
		Columns("applicant_id", "applicant_role", "leave_type", "from_date", "to_date", "reason", "status").
		Values(leave.ApplicantID, leave.ApplicantRole, leave.LeaveType,
			leave.FromDate, leave.ToDate, leave.Reason, leave.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create leave request query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&leave.ID, &leave.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating leave request: %w", err)
	}
	return nil
}

// GetByID retrieves a leave request by ID
func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	sql, args, err := r.sb.Select(leaveColumns).
		From("leave_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get leave request query: %w", err)
	}

	leave, err := scanLeave(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("error getting leave request by ID: %w", err)
	}
	return leave, nil
}

// List retrieves leave requests matching the filter, newest first.
func (r *LeaveRepository) List(ctx context.Context, filter LeaveListFilter) ([]*models.LeaveRequest, error) {
	builder := r.sb.Select(leaveColumns).
		From("leave_requests").
		OrderBy("created_at DESC")
	if filter.ApplicantID > 0 {
		builder = builder.Where(squirrel.Eq{"applicant_id": filter.ApplicantID})
	}
	if filter.ApplicantRole != "" {
		builder = builder.Where(squirrel.Eq{"applicant_role": filter.ApplicantRole})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.LeaveType != "" {
		builder = builder.Where(squirrel.Eq{"leave_type": filter.LeaveType})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list leave requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []*models.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning leave request row: %w", err)
		}
		leaves = append(leaves, leave)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave request rows: %w", err)
	}
	return leaves, nil
}

// UpdateDecision records an approval or rejection. The status guard in
// the WHERE clause makes the transition all-or-nothing: a request that
// is no longer pending is reported as already decided even when two
// reviewers race.
func (r *LeaveRepository) UpdateDecision(ctx context.Context, id int64, status models.LeaveStatus, remarks string, decidedByID int64, decidedAt time.Time) error {
	sql, args, err := r.sb.Update("leave_requests").
		SetMap(map[string]interface{}{
			"status":        status,
			"remarks":       remarks,
			"decided_by_id": decidedByID,
			"decided_at":    decidedAt,
		}).
		Where(squirrel.Eq{"id": id, "status": models.LeavePending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build leave decision query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error recording leave decision: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrLeaveAlreadyDecided
	}
	return nil
}

// Delete deletes a leave request by ID.
func (r *LeaveRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("leave_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete leave request query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting leave request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrLeaveNotFound
	}
	return nil
}

// Stats aggregates leave requests per workflow state.
func (r *LeaveRepository) Stats(ctx context.Context) (*models.LeaveStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM leave_requests
	`
	stats := &models.LeaveStats{}
	err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected)
	if err != nil {
		return nil, fmt.Errorf("error aggregating leave stats: %w", err)
	}
	return stats, nil
}

// CountByType returns the number of requests per leave type, most
// requested first.
func (r *LeaveRepository) CountByType(ctx context.Context) ([]models.LeaveTypeCount, error) {
	sql, args, err := r.sb.Select("leave_type", "COUNT(*)").
		From("leave_requests").
		GroupBy("leave_type").
		OrderBy("COUNT(*) DESC", "leave_type ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leave type counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leave type counts: %w", err)
	}
	defer rows.Close()

	counts := []models.LeaveTypeCount{}
	for rows.Next() {
		var count models.LeaveTypeCount
		if err := rows.Scan(&count.LeaveType, &count.Count); err != nil {
			return nil, fmt.Errorf("error scanning leave type count row: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave type count rows: %w", err)
	}
	return counts, nil
}
