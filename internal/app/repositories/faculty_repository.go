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
)

// Faculty error types
var (
	ErrFacultyNotFound         = ErrNotFound
	ErrEmployeeIDAlreadyExists = errors.New("faculty member with this employee ID already exists")
)

// FacultyRepository handles faculty member database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const facultyColumns = "id, user_id, employee_id, department_id, designation, status"

func scanFaculty(row pgx.Row) (*models.FacultyMember, error) {
	faculty := &models.FacultyMember{}
	err := row.Scan(&faculty.ID, &faculty.UserID, &faculty.EmployeeID,
		&faculty.DepartmentID, &faculty.Designation, &faculty.Status)
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

// Create creates a faculty member and its subject assignments in one
// transaction.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.FacultyMember) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("faculty_members").
		Columns("user_id", "employee_id", "department_id", "designation", "status").
		Values(faculty.UserID, faculty.EmployeeID, faculty.DepartmentID, faculty.Designation, faculty.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&faculty.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_members_employee_id_key") {
			return ErrEmployeeIDAlreadyExists
		}
		return fmt.Errorf("error creating faculty member: %w", err)
	}

	if err := r.insertAssignments(ctx, tx, faculty.ID, faculty.SubjectIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit faculty transaction: %w", err)
	}
	return nil
}

func (r *FacultyRepository) insertAssignments(ctx context.Context, tx pgx.Tx, facultyID int64, subjectIDs []int64) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	builder := r.sb.Insert("faculty_subjects").Columns("faculty_id", "subject_id")
	for _, subjectID := range subjectIDs {
		builder = builder.Values(facultyID, subjectID)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert assignments query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting subject assignments: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty member by ID, including assigned subject IDs.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.FacultyMember, error) {
	sql, args, err := r.sb.Select(facultyColumns).
		From("faculty_members").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error getting faculty member by ID: %w", err)
	}

	faculty.SubjectIDs, err = r.subjectIDs(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

// GetByUserID retrieves a faculty member by its backing account.
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID int64) (*models.FacultyMember, error) {
	sql, args, err := r.sb.Select(facultyColumns).
		From("faculty_members").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty by user query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error getting faculty member by user ID: %w", err)
	}

	faculty.SubjectIDs, err = r.subjectIDs(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}
	return faculty, nil
}

func (r *FacultyRepository) subjectIDs(ctx context.Context, facultyID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("subject_id").
		From("faculty_subjects").
		Where(squirrel.Eq{"faculty_id": facultyID}).
		OrderBy("subject_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subject assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subject assignments: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning subject assignment row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject assignment rows: %w", err)
	}
	return ids, nil
}

// List retrieves faculty members filtered by department and/or status.
// Subject assignments are loaded per member.
func (r *FacultyRepository) List(ctx context.Context, departmentID int64, status models.EntityStatus) ([]*models.FacultyMember, error) {
	builder := r.sb.Select(facultyColumns).
		From("faculty_members").
		OrderBy("employee_id ASC")
	if departmentID > 0 {
		builder = builder.Where(squirrel.Eq{"department_id": departmentID})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying faculty members: %w", err)
	}
	defer rows.Close()

	members := []*models.FacultyMember{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		members = append(members, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	for _, faculty := range members {
		faculty.SubjectIDs, err = r.subjectIDs(ctx, faculty.ID)
		if err != nil {
			return nil, err
		}
	}
	return members, nil
}

// Update updates a faculty member and replaces its subject assignments
// in one transaction.
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.FacultyMember) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Update("faculty_members").
		SetMap(map[string]interface{}{
			"designation": faculty.Designation,
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating faculty member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}

	sql, args, err = r.sb.Delete("faculty_subjects").
		Where(squirrel.Eq{"faculty_id": faculty.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear assignments query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing subject assignments: %w", err)
	}

	if err := r.insertAssignments(ctx, tx, faculty.ID, faculty.SubjectIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit faculty transaction: %w", err)
	}
	return nil
}

// UpdateStatus sets the account lifecycle status in a single statement.
func (r *FacultyRepository) UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error {
	sql, args, err := r.sb.Update("faculty_members").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating faculty status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}
	return nil
}

// Delete deletes a faculty member and its subject assignments.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Delete("faculty_subjects").
		Where(squirrel.Eq{"faculty_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear assignments query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing subject assignments: %w", err)
	}

	sql, args, err = r.sb.Delete("faculty_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting faculty member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit faculty transaction: %w", err)
	}
	return nil
}
