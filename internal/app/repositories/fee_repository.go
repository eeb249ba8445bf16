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

// Fee error types
var (
	ErrFeeNotFound    = ErrNotFound
	ErrFeeAlreadyPaid = errors.New("fee record is already marked as paid")
)

// FeeRepository handles fee database operations
type FeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const feeColumns = "id, student_id, fee_type, amount, due_date, status, paid_at, created_at"

func scanFee(row pgx.Row) (*models.Fee, error) {
	fee := &models.Fee{}
	err := row.Scan(&fee.ID, &fee.StudentID, &fee.FeeType, &fee.Amount,
		&fee.DueDate, &fee.Status, &fee.PaidAt, &fee.CreatedAt)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// Create creates a new fee record
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	sql, args, err := r.sb.Insert("fees").
		Columns("student_id", "fee_type", "amount", "due_date", "status").
		Values(fee.StudentID, fee.FeeType, fee.Amount, fee.DueDate, fee.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fee query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&fee.ID, &fee.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating fee record: %w", err)
	}
	return nil
}

// GetByID retrieves a fee record by ID
func (r *FeeRepository) GetByID(ctx context.Context, id int64) (*models.Fee, error) {
	sql, args, err := r.sb.Select(feeColumns).
		From("fees").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee query: %w", err)
	}

	fee, err := scanFee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("error getting fee by ID: %w", err)
	}
	return fee, nil
}

// List retrieves fee records filtered by student and/or payment status.
func (r *FeeRepository) List(ctx context.Context, studentID int64, status models.FeeStatus) ([]*models.Fee, error) {
	builder := r.sb.Select(feeColumns).
		From("fees").
		OrderBy("due_date ASC", "id ASC")
	if studentID > 0 {
		builder = builder.Where(squirrel.Eq{"student_id": studentID})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying fees: %w", err)
	}
	defer rows.Close()

	fees := []*models.Fee{}
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fee row: %w", err)
		}
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee rows: %w", err)
	}
	return fees, nil
}

// MarkPaid transitions an unpaid fee to paid. The status guard keeps the
// transition idempotence strict: paying twice surfaces as a conflict.
func (r *FeeRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	sql, args, err := r.sb.Update("fees").
		SetMap(map[string]interface{}{
			"status":  models.FeePaid,
			"paid_at": paidAt,
		}).
		Where(squirrel.Eq{"id": id, "status": models.FeeUnpaid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark fee paid query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking fee as paid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFeeAlreadyPaid
	}
	return nil
}

// Delete deletes a fee record by ID.
func (r *FeeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("fees").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete fee query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting fee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFeeNotFound
	}
	return nil
}
