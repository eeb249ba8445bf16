package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/dberrors"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
)

// Department error types
var (
	ErrDepartmentNotFound      = ErrNotFound
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
)

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code", "status", "head_of_department_id").
		Values(department.Name, department.Code, department.Status, department.HeadOfDepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrDepartmentAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create department query")
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "status", "head_of_department_id").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	department := &models.Department{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&department.ID, &department.Name, &department.Code, &department.Status, &department.HeadOfDepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		logger.Error().Err(err).Int64("departmentID", id).Msg("Error scanning department row")
		return nil, fmt.Errorf("error getting department by ID: %w", err)
	}
	return department, nil
}

// List retrieves departments, optionally filtered by status
func (r *DepartmentRepository) List(ctx context.Context, status models.EntityStatus) ([]*models.Department, error) {
	builder := r.sb.Select("id", "name", "code", "status", "head_of_department_id").
		From("departments").
		OrderBy("name ASC")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		department := &models.Department{}
		if err := rows.Scan(&department.ID, &department.Name, &department.Code, &department.Status, &department.HeadOfDepartmentID); err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return departments, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Update("departments").
		SetMap(map[string]interface{}{
			"name":                  department.Name,
			"code":                  department.Code,
			"head_of_department_id": department.HeadOfDepartmentID,
		}).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// UpdateStatus sets the lifecycle status in a single statement.
func (r *DepartmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error {
	sql, args, err := r.sb.Update("departments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating department status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// CountDependents returns the per-category counts of records referencing
// the department. Faculty assignment chains count subjects owned by the
// department's courses.
func (r *DepartmentRepository) CountDependents(ctx context.Context, id int64) (models.DependentCounts, error) {
	var counts models.DependentCounts
	query := `
		SELECT
			(SELECT COUNT(*) FROM courses WHERE department_id = $1),
			(SELECT COUNT(*) FROM subjects s JOIN courses c ON s.course_id = c.id WHERE c.department_id = $1),
			(SELECT COUNT(*) FROM students WHERE department_id = $1),
			(SELECT COUNT(*) FROM faculty_members WHERE department_id = $1)
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&counts.Courses, &counts.Subjects, &counts.Students, &counts.Faculty)
	if err != nil {
		return counts, fmt.Errorf("error counting department dependents: %w", err)
	}
	return counts, nil
}

// Delete deletes a department by ID. Dependency checks belong to the
// service layer; this is the plain row delete.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
